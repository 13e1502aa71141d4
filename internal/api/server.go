// Package api implements the HTTP layer serving the persisted batch
// results. Handlers are methods on *Server. The serve mode is read-only:
// it exposes the latest run's workbook, never recomputes anything.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ISTdatateam/InformeCEAL/internal/store"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// Env is "production", "staging", or "development".
	Env string
}

// RunSource is the narrow slice of the store the HTTP layer reads.
// *store.Store satisfies it; tests substitute a stub.
type RunSource interface {
	LatestRun(ctx context.Context) (store.Run, error)
}

// Server holds all shared dependencies. Each handler file attaches
// methods to this type and uses only the fields it needs.
type Server struct {
	runs   RunSource
	cfg    Config
	logger *slog.Logger

	cache runCache
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(runs RunSource, cfg Config, logger *slog.Logger) http.Handler {
	s := &Server{
		runs:   runs,
		cfg:    cfg,
		logger: logger,
	}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ── API v1 ────────────────────────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {
		r.Get("/runs/latest", s.handleLatestRun)
		r.Get("/runs/latest/sheets/{sheet}", s.handleSheet)

		r.Route("/instances/{cuv}", func(r chi.Router) {
			r.Get("/summary", s.handleInstanceSummary)
			r.Get("/results", s.handleInstanceResults)
		})
	})

	return r
}
