// Package web provides the HTTP server and handlers for the record-grid
// API: field metadata, filtered record listings, CSV import/export, and
// view preferences.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jordanshaw/crmgrid/internal/config"
	"github.com/jordanshaw/crmgrid/internal/grid"
	mw "github.com/jordanshaw/crmgrid/internal/web/middleware"
)

// Server is the HTTP server for the record-grid API.
type Server struct {
	svc    *grid.Service
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server instance with middleware and routes
// configured.
func NewServer(svc *grid.Service, cfg *config.Config) *Server {
	s := &Server{
		svc:    svc,
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.BearerAuth(&s.cfg.Security))

		r.Get("/fields", s.handleListFields)

		r.Get("/leads", s.handleListLeads)
		r.Get("/leads/export", s.handleExport)
		r.Post("/leads/import", s.handleImport)

		r.Route("/preferences/{view}", func(r chi.Router) {
			r.Get("/", s.handleGetPreference)
			r.Put("/", s.handlePutPreference)
			r.Delete("/", s.handleDeletePreference)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// securityHeaders adds standard hardening headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeError writes a JSON error response and logs the detail
// server-side.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Warn("request failed", "status", status, "path", r.URL.Path, "error", message)
	writeJSON(w, status, map[string]string{"error": message})
}
