package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id          TEXT    PRIMARY KEY,
		position    INTEGER NOT NULL,
		type        TEXT    NOT NULL,
		bedrooms    INTEGER NOT NULL CHECK (bedrooms >= 0),
		price       INTEGER NOT NULL CHECK (price >= 0),
		tenure      TEXT    NOT NULL DEFAULT '',
		description TEXT    NOT NULL DEFAULT '',
		location    TEXT    NOT NULL,
		picture     TEXT    NOT NULL DEFAULT '',
		floorplan   TEXT    NOT NULL DEFAULT '',
		added_year  INTEGER NOT NULL,
		added_month TEXT    NOT NULL,
		added_day   INTEGER NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_position ON properties(position)`,
	`CREATE TABLE IF NOT EXISTS property_images (
		property_id TEXT    NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		url         TEXT    NOT NULL,
		PRIMARY KEY (property_id, position)
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions (idempotent, checks if column exists first)
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"properties", "url", "TEXT NOT NULL DEFAULT ''"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) (err error) {
	exists, err := hasColumn(db, table, column)
	if err != nil || exists {
		return err
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

// hasColumn reports whether table already has column.
func hasColumn(db *sql.DB, table, column string) (found bool, err error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterating columns: %w", err)
	}
	return found, nil
}
