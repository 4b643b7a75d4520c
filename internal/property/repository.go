package property

import (
	"database/sql"
	"fmt"
)

// Repository stores an imported catalog in SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO properties
	(id, position, type, bedrooms, price, tenure, description, location, picture, floorplan, url, added_year, added_month, added_day)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertImageSQL = `INSERT INTO property_images (property_id, position, url) VALUES (?, ?, ?)`

const selectColumns = `id, type, bedrooms, price, tenure, description, location, picture, floorplan, url, added_year, added_month, added_day`

// ReplaceAll swaps the stored catalog for props in a single transaction.
// Catalog order is kept in the position column.
func (r *Repository) ReplaceAll(props []*Property) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	// Images cascade.
	if _, err = tx.Exec("DELETE FROM properties"); err != nil {
		return fmt.Errorf("clearing properties: %w", err)
	}

	for i, p := range props {
		if _, err = tx.Exec(insertSQL,
			p.ID, i, string(p.Type), p.Bedrooms, p.Price,
			p.Tenure, p.Description, p.Location, p.Picture, p.Floorplan, p.URL,
			p.Added.Year, p.Added.Month, p.Added.Day,
		); err != nil {
			return fmt.Errorf("inserting property %s: %w", p.ID, err)
		}
		for j, img := range p.Images {
			if _, err = tx.Exec(insertImageSQL, p.ID, j, img); err != nil {
				return fmt.Errorf("inserting image for %s: %w", p.ID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

// scanProperty scans a property from a database row.
func scanProperty(row interface{ Scan(...interface{}) error }) (*Property, error) {
	var p Property
	var typ string
	err := row.Scan(
		&p.ID, &typ, &p.Bedrooms, &p.Price,
		&p.Tenure, &p.Description, &p.Location, &p.Picture, &p.Floorplan, &p.URL,
		&p.Added.Year, &p.Added.Month, &p.Added.Day,
	)
	if err != nil {
		return nil, err
	}
	p.Type = Type(typ)
	return &p, nil
}

// GetByID returns a stored property by its id.
func (r *Repository) GetByID(id string) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", selectColumns)
	p, err := scanProperty(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %s: %w", id, err)
	}

	images, err := r.images("SELECT property_id, url FROM property_images WHERE property_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	p.Images = images[p.ID]
	return p, nil
}

// List returns every stored property in catalog order.
func (r *Repository) List() ([]*Property, error) {
	props, err := r.listRows()
	if err != nil {
		return nil, err
	}

	// Rows must be closed first: the database runs on a single connection.
	images, err := r.images("SELECT property_id, url FROM property_images ORDER BY property_id, position")
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		p.Images = images[p.ID]
	}

	return props, nil
}

func (r *Repository) listRows() (props []*Property, err error) {
	query := fmt.Sprintf("SELECT %s FROM properties ORDER BY position", selectColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}
	return props, nil
}

// images runs an image query and groups gallery urls by property id.
func (r *Repository) images(query string, args ...interface{}) (out map[string][]string, err error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	out = make(map[string][]string)
	for rows.Next() {
		var id, url string
		if err := rows.Scan(&id, &url); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		out[id] = append(out[id], url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating images: %w", err)
	}
	return out, nil
}
