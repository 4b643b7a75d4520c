package property

import (
	"encoding/json"
	"fmt"
	"os"
)

// document is the on-disk catalog shape: {"properties": [...]}.
type document struct {
	Properties []*Property `json:"properties"`
}

// Parse validates a catalog document and decodes its listings in order.
func Parse(data []byte) ([]*Property, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return doc.Properties, nil
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	props, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	return NewCatalog(props)
}

// Service loads and imports catalogs backed by a Repository.
type Service struct {
	repo *Repository
}

// NewService creates a catalog service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Import replaces the stored catalog with the listings in a JSON document.
// Nothing is written unless the whole document validates.
func (s *Service) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	props, err := Parse(data)
	if err != nil {
		return 0, err
	}

	// Reject duplicate ids before touching the database.
	if _, err := NewCatalog(props); err != nil {
		return 0, err
	}

	if err := s.repo.ReplaceAll(props); err != nil {
		return 0, fmt.Errorf("saving catalog: %w", err)
	}

	return len(props), nil
}

// Catalog loads the stored catalog in its imported order.
func (s *Service) Catalog() (*Catalog, error) {
	props, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return NewCatalog(props)
}
