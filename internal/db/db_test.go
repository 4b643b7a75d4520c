package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "catalog.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "catalog.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "catalog.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrations(t *testing.T) {
	tests := []struct {
		name  string
		table string
		cols  []string
	}{
		{
			name:  "properties table exists",
			table: "properties",
			cols:  []string{"id", "position", "type", "bedrooms", "price", "tenure", "description", "location", "picture", "floorplan", "added_year", "added_month", "added_day", "imported_at", "url"},
		},
		{
			name:  "property_images table exists",
			table: "property_images",
			cols:  []string{"property_id", "position", "url"},
		},
	}

	d := openTestDB(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := tableColumns(t, d, tt.table)
			if len(cols) != len(tt.cols) {
				t.Fatalf("got %d columns, want %d: %v", len(cols), len(tt.cols), cols)
			}
			for i, want := range tt.cols {
				if cols[i] != want {
					t.Errorf("column %d = %q, want %q", i, cols[i], want)
				}
			}
		})
	}
}

func TestPriceAndBedroomConstraints(t *testing.T) {
	d := openTestDB(t)

	insert := `INSERT INTO properties (id, position, type, bedrooms, price, location, added_year, added_month, added_day)
		VALUES (?, 0, 'House', ?, ?, 'Somewhere', 2022, 'October', 12)`

	tests := []struct {
		name     string
		bedrooms int
		price    int
		wantErr  bool
	}{
		{"zero values are valid", 0, 0, false},
		{"positive values are valid", 3, 750000, false},
		{"negative price is invalid", 2, -1, true},
		{"negative bedrooms is invalid", -1, 100, true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Exec(insert, fmt.Sprintf("prop%d", i), tt.bedrooms, tt.price)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCascadeDelete(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(
		`INSERT INTO properties (id, position, type, bedrooms, price, location, added_year, added_month, added_day)
		VALUES ('prop1', 0, 'House', 3, 500000, 'Petts Wood Road, Orpington BR5', 2022, 'October', 12)`,
	)
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err = d.Exec(
			`INSERT INTO property_images (property_id, position, url) VALUES (?, ?, ?)`,
			"prop1", i, fmt.Sprintf("images/prop1pic%d.jpg", i),
		)
		if err != nil {
			t.Fatalf("insert image %d: %v", i, err)
		}
	}

	var count int
	if err := d.QueryRow(`SELECT COUNT(*) FROM property_images WHERE property_id = ?`, "prop1").Scan(&count); err != nil {
		t.Fatalf("count images: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 images, got %d", count)
	}

	if _, err := d.Exec(`DELETE FROM properties WHERE id = ?`, "prop1"); err != nil {
		t.Fatalf("delete property: %v", err)
	}

	if err := d.QueryRow(`SELECT COUNT(*) FROM property_images WHERE property_id = ?`, "prop1").Scan(&count); err != nil {
		t.Fatalf("count images after delete: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 images after cascade delete, got %d", count)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	// Open twice; migrations must not fail on the second run
	d1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second open (idempotency): %v", err)
	}
	if err := d2.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "catalog.db" {
		t.Errorf("expected filename catalog.db, got %s", filepath.Base(p))
	}

	dir := filepath.Base(filepath.Dir(p))
	if dir != "ef" {
		t.Errorf("expected directory ef, got %s", dir)
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

// tableColumns returns column names for a table using PRAGMA table_info.
func tableColumns(t *testing.T, d *sql.DB, table string) []string {
	t.Helper()
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("pragma table_info(%s): %v", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}
