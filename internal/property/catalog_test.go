package property

import (
	"errors"
	"testing"
)

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name    string
		props   []*Property
		wantErr bool
	}{
		{"empty", nil, false},
		{"unique ids", []*Property{{ID: "prop1"}, {ID: "prop2"}}, false},
		{"duplicate id", []*Property{{ID: "prop1"}, {ID: "prop1"}}, true},
		{"missing id", []*Property{{ID: ""}}, true},
		{"nil listing", []*Property{nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.props)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCatalogAllPreservesOrderAndCopies(t *testing.T) {
	c := testCatalog(t)

	all := c.All()
	if len(all) != 2 || all[0].ID != "prop1" || all[1].ID != "prop2" {
		t.Fatalf("unexpected order: %v", ids(all))
	}

	all[0] = nil
	if c.All()[0] == nil {
		t.Error("mutating All() result changed the catalog")
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog(t)

	p, ok := c.Lookup("prop2")
	if !ok || p.Location != "Test Flat Location" {
		t.Fatalf("lookup prop2 = %v, %v", p, ok)
	}

	if _, ok := c.Lookup("nope"); ok {
		t.Error("expected unknown id to miss")
	}

	_, err := c.Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]*Property{
		{ID: "prop1", Type: TypeHouse, Price: 500000, Bedrooms: 3, Location: "Test House Location",
			Added: AddedDate{Month: "January", Day: 1, Year: 2025}},
		{ID: "prop2", Type: TypeFlat, Price: 200000, Bedrooms: 1, Location: "Test Flat Location",
			Added: AddedDate{Month: "March", Day: 1, Year: 2025}},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

func ids(props []*Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		if p != nil {
			out[i] = p.ID
		}
	}
	return out
}
