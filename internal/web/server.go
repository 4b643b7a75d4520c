// Package web provides the HTTP JSON API for searching the catalog and
// curating per-session favorites.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/estate-finder/internal/logging"
	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
	"github.com/evcraddock/estate-finder/internal/session"
)

// SessionCookie names the cookie that carries the session id for browsers.
const SessionCookie = "ef_session"

// Server is the API HTTP server.
type Server struct {
	catalog      *property.Catalog
	sessions     *session.Manager
	postcodeMode search.PostcodeMode
	mux          *http.ServeMux
}

// NewServer creates an API server over a loaded catalog. postcodeMode is used
// when a search request does not name one.
func NewServer(catalog *property.Catalog, sessions *session.Manager, postcodeMode search.PostcodeMode) *Server {
	if postcodeMode == "" {
		postcodeMode = search.ModeSubstring
	}

	s := &Server{
		catalog:      catalog,
		sessions:     sessions,
		postcodeMode: postcodeMode,
		mux:          http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/properties", s.handleAPIProperties)
	s.mux.HandleFunc("/api/properties/", s.handleAPIProperties)
	s.mux.HandleFunc("/api/favorites", s.handleAPIFavorites)
	s.mux.HandleFunc("/api/favorites/", s.handleAPIFavorites)
	s.mux.HandleFunc("/api/drag", s.handleAPIDrag)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handler returns the server wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logging.RequestLogger(s)
}

// ListenAndServe serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", "http://localhost"+srv.Addr, "properties", s.catalog.Len())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	slog.Info("API server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// session resolves the caller's session from the X-Session-ID header or the
// session cookie, creating one if needed, and echoes the id back on both.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	id := r.Header.Get(logging.SessionHeader)
	if id == "" {
		if c, err := r.Cookie(SessionCookie); err == nil {
			id = c.Value
		}
	}

	sess, created := s.sessions.Get(id)
	if created {
		slog.Debug("session started", "session", sess.ID)
	}

	w.Header().Set(logging.SessionHeader, sess.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}
