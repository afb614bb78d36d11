package http

import (
	"context"
	"net/http"
	"time"

	"catalogservice/internal/auth"
	"catalogservice/internal/httpx"
	"catalogservice/internal/platform/logger"
)

// ReadinessCheck reports whether the service's dependencies are reachable.
type ReadinessCheck func(ctx context.Context) error

// RouterConfig carries everything needed to assemble the HTTP surface.
type RouterConfig struct {
	BookHandler *BookHandler
	JWTSecret   string
	Policy      *auth.Policy
	Logger      *logger.Logger
	Readiness   ReadinessCheck
}

// NewRouter wires routes and the middleware chain. Order matters: the request
// ID exists before anything logs, the policy decision happens before any
// handler runs, and the access log sees the authenticated principal.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, "Welcome to the book catalog!")
	})

	mux.HandleFunc("GET /books", cfg.BookHandler.List)
	mux.HandleFunc("GET /books/{isbn}", cfg.BookHandler.GetByISBN)
	mux.HandleFunc("POST /books", cfg.BookHandler.Create)
	mux.HandleFunc("PUT /books/{isbn}", cfg.BookHandler.Update)
	mux.HandleFunc("DELETE /books/{isbn}", cfg.BookHandler.Delete)

	mux.HandleFunc("GET /actuator/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, map[string]string{"status": "UP"})
	})
	mux.HandleFunc("GET /actuator/health/readiness", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Readiness != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := cfg.Readiness(ctx); err != nil {
				httpx.JSONError(w, http.StatusServiceUnavailable, "not_ready", "Dependency not reachable", nil)
				return
			}
		}
		httpx.JSONSuccess(w, map[string]string{"status": "UP"})
	})

	var handler http.Handler = mux
	handler = httpx.AccessLogMiddleware(cfg.Logger)(handler)
	handler = httpx.AuthMiddleware(cfg.JWTSecret, cfg.Policy)(handler)
	handler = httpx.RecoveryMiddleware(cfg.Logger)(handler)
	handler = httpx.RequestIDMiddleware(handler)
	return handler
}
