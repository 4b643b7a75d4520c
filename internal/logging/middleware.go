package logging

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// SessionHeader carries the session id on API requests and responses.
const SessionHeader = "X-Session-ID"

type attrsKey struct{}

// requestAttrs collects what handlers report about a request, e.g. the
// result count of a search or the outcome of a drag.
type requestAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// AddAttrs attaches attributes to the request log line written by
// RequestLogger. Outside RequestLogger it does nothing.
func AddAttrs(ctx context.Context, attrs ...slog.Attr) {
	ra, ok := ctx.Value(attrsKey{}).(*requestAttrs)
	if !ok {
		return
	}
	ra.mu.Lock()
	ra.attrs = append(ra.attrs, attrs...)
	ra.mu.Unlock()
}

// RequestLogger is middleware that logs HTTP requests.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip noisy paths
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		ra := &requestAttrs{}

		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), attrsKey{}, ra)))

		duration := time.Since(start)

		level := slog.LevelInfo
		if rw.status >= 500 {
			level = slog.LevelError
		} else if rw.status >= 400 {
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rw.status),
			slog.String("duration", duration.String()),
			slog.String("ip", r.RemoteAddr),
			slog.String("session", rw.Header().Get(SessionHeader)),
		}
		ra.mu.Lock()
		attrs = append(attrs, ra.attrs...)
		ra.mu.Unlock()

		slog.LogAttrs(r.Context(), level, "request", attrs...)
	})
}
