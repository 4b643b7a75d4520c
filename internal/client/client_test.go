package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/estate-finder/internal/dnd"
	"github.com/evcraddock/estate-finder/internal/logging"
	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
	"github.com/evcraddock/estate-finder/internal/session"
	"github.com/evcraddock/estate-finder/internal/web"
)

func TestSearchEncodesCriteria(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties" {
			t.Errorf("path = %q, want /api/properties", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("maxPrice") != "300000" {
			t.Errorf("maxPrice = %q", q.Get("maxPrice"))
		}
		if q.Get("type") != "Flat" {
			t.Errorf("type = %q", q.Get("type"))
		}
		if q.Has("minPrice") {
			t.Error("unset minPrice should not be sent")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(SearchResult{Count: 1, Properties: []*property.Property{{ID: "prop2"}}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Search(search.Criteria{Type: "Flat", MaxPrice: search.Int(300000)})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Count != 1 || res.Properties[0].ID != "prop2" {
		t.Errorf("got %+v", res)
	}
}

func TestSearchDefaultsSendNoQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(SearchResult{}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Search(search.DefaultCriteria()); err != nil {
		t.Fatalf("search: %v", err)
	}
}

func TestGetPropertyEscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/properties/a%2Fb" {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(property.Property{ID: "a/b"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	p, err := New(srv.URL).GetProperty("a/b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != "a/b" {
		t.Errorf("id = %q", p.ID)
	}
}

func TestErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": "property not found"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetProperty("ghost")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "property not found" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestErrorResponseWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Favorites()
	if err == nil || !strings.Contains(err.Error(), "Bad Gateway") {
		t.Errorf("error = %v", err)
	}
}

func TestSessionHeaderIsRemembered(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(logging.SessionHeader))
		w.Header().Set(logging.SessionHeader, "sess-1")
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Favorites{}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Favorites(); err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if _, err := c.Favorites(); err != nil {
		t.Fatalf("favorites: %v", err)
	}

	if len(seen) != 2 || seen[0] != "" || seen[1] != "sess-1" {
		t.Errorf("session headers sent = %v", seen)
	}
	if c.SessionID() != "sess-1" {
		t.Errorf("SessionID() = %q", c.SessionID())
	}
}

func testAPI(t *testing.T) *httptest.Server {
	t.Helper()
	catalog, err := property.NewCatalog([]*property.Property{
		{ID: "prop1", Type: property.TypeHouse, Price: 500000, Bedrooms: 3, Location: "Test House Location"},
		{ID: "prop2", Type: property.TypeFlat, Price: 200000, Bedrooms: 1, Location: "Test Flat Location"},
	})
	if err != nil {
		t.Fatalf("creating catalog: %v", err)
	}
	api := web.NewServer(catalog, session.NewManager(catalog, time.Hour), search.ModeSubstring)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return srv
}

func TestAgainstServer(t *testing.T) {
	srv := testAPI(t)
	c := New(srv.URL)

	res, err := c.Search(search.Criteria{PostcodeQuery: "Flat"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Count != 1 || res.Properties[0].ID != "prop2" {
		t.Fatalf("search = %+v", res)
	}

	if _, err := c.AddFavorite("prop1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	fav, err := c.ToggleFavorite("prop2")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if fav.Count != 2 || fav.Favorite == nil || !*fav.Favorite {
		t.Fatalf("toggle = %+v", fav)
	}

	if _, err := c.Drag(dnd.RawEvent{Kind: "dragStart", Zone: "favorites-list", ItemID: "prop1"}); err != nil {
		t.Fatalf("drag start: %v", err)
	}
	drag, err := c.Drag(dnd.RawEvent{Kind: "dragEnd"})
	if err != nil {
		t.Fatalf("drag end: %v", err)
	}
	if drag.Outcome != dnd.Removed || drag.Count != 1 {
		t.Fatalf("drag = %+v", drag)
	}

	fav, err = c.RemoveFavorite("prop2")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if fav.Count != 0 {
		t.Errorf("count after remove = %d", fav.Count)
	}

	if _, err := c.AddFavorite("ghost"); err == nil {
		t.Error("expected error for unknown id")
	}

	if _, err := c.AddFavorite("prop2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	fav, err = c.ClearFavorites()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if fav.Count != 0 {
		t.Errorf("count after clear = %d", fav.Count)
	}
}

func TestDragInvalidEvent(t *testing.T) {
	srv := testAPI(t)
	_, err := New(srv.URL).Drag(dnd.RawEvent{Kind: "dragStart", Zone: "nowhere", ItemID: "prop1"})
	if err == nil || !strings.Contains(err.Error(), "invalid drag event") {
		t.Errorf("error = %v", err)
	}
}

func TestSearchSendsExplicitPostcodeMode(t *testing.T) {
	catalog, err := property.NewCatalog([]*property.Property{
		{ID: "prop1", Type: property.TypeHouse, Price: 750000, Bedrooms: 3, Location: "Petts Wood Road, Orpington BR5"},
	})
	if err != nil {
		t.Fatalf("creating catalog: %v", err)
	}
	api := web.NewServer(catalog, session.NewManager(catalog, time.Hour), search.ModePrefix)
	srv := httptest.NewServer(api)
	defer srv.Close()

	tests := []struct {
		name string
		mode search.PostcodeMode
		want int
	}{
		{"explicit substring", search.ModeSubstring, 1},
		{"explicit prefix", search.ModePrefix, 0},
		{"server default", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := search.Criteria{PostcodeQuery: "BR5", PostcodeMode: tt.mode}

			res, err := New(srv.URL).Search(c)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if res.Count != tt.want {
				t.Errorf("remote count = %d, want %d", res.Count, tt.want)
			}
			if tt.mode != "" {
				if local := len(search.Filter(catalog.All(), c)); local != res.Count {
					t.Errorf("local count %d, remote count %d", local, res.Count)
				}
			}
		})
	}
}
