package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evcraddock/estate-finder/internal/dnd"
	"github.com/evcraddock/estate-finder/internal/logging"
	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
	"github.com/evcraddock/estate-finder/internal/session"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// SearchResponse is the body of GET /api/properties.
type SearchResponse struct {
	Count      int                  `json:"count"`
	Properties []*property.Property `json:"properties"`
}

// FavoritesResponse is the body of every favorites endpoint.
type FavoritesResponse struct {
	Count     int                  `json:"count"`
	Favorites []*property.Property `json:"favorites"`
	// Favorite is set by toggle: whether the listing is a favorite afterwards.
	Favorite *bool `json:"favorite,omitempty"`
}

// DragResponse is the body of POST /api/drag.
type DragResponse struct {
	Outcome   dnd.Outcome          `json:"outcome"`
	Count     int                  `json:"count"`
	Favorites []*property.Property `json:"favorites"`
}

func favoritesResponse(sess *session.Session) FavoritesResponse {
	list := sess.Favorites.List()
	return FavoritesResponse{Count: len(list), Favorites: list}
}

// handleAPIProperties routes /api/properties requests.
func (s *Server) handleAPIProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/properties")
	path = strings.TrimPrefix(path, "/")

	// /api/properties: search
	if path == "" {
		s.apiSearch(w, r)
		return
	}

	// /api/properties/{id}
	p, err := s.catalog.Get(path)
	if err != nil {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

// apiSearch filters the catalog with criteria from the query string.
func (s *Server) apiSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := search.ParseCriteria(q)
	if q.Get(search.FieldPostcodeMode) == "" {
		c.PostcodeMode = s.postcodeMode
	}

	results := search.Filter(s.catalog.All(), c)
	logging.AddAttrs(r.Context(), slog.Int("results", len(results)))
	apiJSON(w, SearchResponse{Count: len(results), Properties: results}, http.StatusOK)
}

// handleAPIFavorites routes /api/favorites requests.
func (s *Server) handleAPIFavorites(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/favorites")
	path = strings.TrimPrefix(path, "/")

	// /api/favorites: list, add or clear
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			apiJSON(w, favoritesResponse(s.session(w, r)), http.StatusOK)
		case http.MethodPost:
			s.apiAddFavorite(w, r)
		case http.MethodDelete:
			s.apiClearFavorites(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/favorites/{id}/toggle
	if strings.HasSuffix(path, "/toggle") {
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiToggleFavorite(w, r, strings.TrimSuffix(path, "/toggle"))
		return
	}

	// /api/favorites/{id}
	if r.Method != http.MethodDelete {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.apiRemoveFavorite(w, r, path)
}

// apiAddFavorite adds a catalog listing by id. Adding a favorite twice is not an error.
func (s *Server) apiAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		apiError(w, "id is required", http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	p, ok := s.catalog.Lookup(id)
	if !ok {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}

	if sess.Favorites.Add(p) {
		slog.Debug("favorite added", "session", sess.ID, "property", id)
	}
	apiJSON(w, favoritesResponse(sess), http.StatusOK)
}

// apiToggleFavorite flips a listing in or out of favorites.
func (s *Server) apiToggleFavorite(w http.ResponseWriter, r *http.Request, id string) {
	sess := s.session(w, r)
	p, ok := s.catalog.Lookup(id)
	if !ok {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}

	on := sess.Favorites.Toggle(p)
	slog.Debug("favorite toggled", "session", sess.ID, "property", id, "favorite", on)

	resp := favoritesResponse(sess)
	resp.Favorite = &on
	apiJSON(w, resp, http.StatusOK)
}

// apiRemoveFavorite removes a favorite. Removing a non-member succeeds.
func (s *Server) apiRemoveFavorite(w http.ResponseWriter, r *http.Request, id string) {
	sess := s.session(w, r)
	if sess.Favorites.Remove(id) {
		slog.Debug("favorite removed", "session", sess.ID, "property", id)
	}
	apiJSON(w, favoritesResponse(sess), http.StatusOK)
}

func (s *Server) apiClearFavorites(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Favorites.Clear()
	slog.Debug("favorites cleared", "session", sess.ID)
	apiJSON(w, favoritesResponse(sess), http.StatusOK)
}

// handleAPIDrag feeds one drag lifecycle event into the session's coordinator.
func (s *Server) handleAPIDrag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var raw dnd.RawEvent
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	ev, err := dnd.ParseEvent(raw)
	if err != nil {
		if errors.Is(err, dnd.ErrInvalidEvent) {
			apiError(w, err.Error(), http.StatusBadRequest)
			return
		}
		apiError(w, "parsing drag event", http.StatusInternalServerError)
		return
	}

	sess := s.session(w, r)
	outcome := sess.Drag.Handle(ev)
	slog.Debug("drag event", "session", sess.ID, "kind", ev.Kind(), "outcome", outcome)
	logging.AddAttrs(r.Context(), slog.String("drag", string(ev.Kind())), slog.String("outcome", string(outcome)))

	list := sess.Favorites.List()
	apiJSON(w, DragResponse{Outcome: outcome, Count: len(list), Favorites: list}, http.StatusOK)
}
