// Package web serves the read-only HTTP API over the dataset registry and
// the cleaning helpers.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/vocdata/internal/config"
	"github.com/JonMunkholm/vocdata/internal/loader"
	"github.com/JonMunkholm/vocdata/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// DefaultRowLimit is the number of rows returned by the rows endpoint when
// no limit is given.
const DefaultRowLimit = 50

// MaxRowLimit caps the limit query parameter.
const MaxRowLimit = 1000

// Server is the HTTP server for the vocdata API.
type Server struct {
	cfg    config.ServerConfig
	loader *loader.Loader
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server reading datasets through ld.
func NewServer(cfg config.ServerConfig, ld *loader.Loader) *Server {
	s := &Server{
		cfg:    cfg,
		loader: ld,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.RequestTimeout))
	}
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)

	s.router.Route("/api", func(r chi.Router) {
		// Dataset registry
		r.Get("/datasets", s.handleListDatasets)
		r.Get("/datasets/{label}", s.handleGetDataset)
		r.Get("/datasets/{label}/rows", s.handleDatasetRows)

		// Voyage identifiers
		r.Get("/voyage-numbers/{number}", s.handleVoyageNumber)
		r.Get("/corrections/discrepancies", s.handleDiscrepancies)

		// Record helpers
		r.Get("/source-type", s.handleSourceType)
		r.Get("/dates/delta", s.handleDateDelta)
		r.Get("/dates/edtf", s.handleEDTF)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, ErrorResponse{Error: "not found", Code: "not_found"})
	})
}

// Start begins listening for HTTP requests on the configured address.
// It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	slog.Info("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "path", r.URL.Path, "error", err)
	}
}
