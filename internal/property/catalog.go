package property

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id does not resolve to a catalog listing.
var ErrNotFound = errors.New("property not found")

// Catalog is the fixed, ordered set of listings for a session.
// It is safe for concurrent reads because nothing mutates it after NewCatalog.
type Catalog struct {
	props []*Property
	byID  map[string]*Property
}

// NewCatalog builds a catalog in the given order. Ids must be non-empty and unique.
func NewCatalog(props []*Property) (*Catalog, error) {
	c := &Catalog{
		props: make([]*Property, 0, len(props)),
		byID:  make(map[string]*Property, len(props)),
	}
	for i, p := range props {
		if p == nil {
			return nil, fmt.Errorf("listing %d is nil", i)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("listing %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate listing id %q", p.ID)
		}
		c.byID[p.ID] = p
		c.props = append(c.props, p)
	}
	return c, nil
}

// All returns the listings in catalog order. The returned slice is a copy;
// the listings themselves are shared and must be treated as read-only.
func (c *Catalog) All() []*Property {
	out := make([]*Property, len(c.props))
	copy(out, c.props)
	return out
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.props)
}

// Lookup resolves an id against the catalog.
func (c *Catalog) Lookup(id string) (*Property, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Get is Lookup with an error for callers that report failures.
func (c *Catalog) Get(id string) (*Property, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}
