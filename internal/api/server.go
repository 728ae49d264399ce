// Package api exposes the index over HTTP in serve mode.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docdex/docdex/internal/pipeline"
)

// Server holds the most recent pipeline report and serves it. Rebuilds
// swap the report atomically, so readers always see a complete run.
type Server struct {
	router chi.Router
	pipe   *pipeline.Pipeline
	stats  *pipeline.RunStats
	log    *slog.Logger
	apiKey string

	rebuildMu sync.Mutex
	mu        sync.RWMutex
	current   *pipeline.Report
}

// NewServer creates and configures the HTTP server. An empty apiKey
// leaves the API open, which is the default for a local tool.
func NewServer(pipe *pipeline.Pipeline, stats *pipeline.RunStats, log *slog.Logger, apiKey string) *Server {
	s := &Server{
		pipe:   pipe,
		stats:  stats,
		log:    log,
		apiKey: apiKey,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(AuthMiddleware(s.apiKey, s.log))
		}

		r.Get("/api/documents", s.handleDocuments)
		r.Get("/api/index", s.handleIndex)
		r.Get("/api/stats", s.handleStats)
		r.Post("/api/rebuild", s.handleRebuild)
	})

	s.router = r
}

// Rebuild runs the pipeline once and publishes the fresh report.
// Concurrent calls serialize; each one runs a full scan.
func (s *Server) Rebuild(ctx context.Context) (*pipeline.Report, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	rep, err := s.pipe.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.stats.Record(rep)

	s.mu.Lock()
	s.current = rep
	s.mu.Unlock()
	return rep, nil
}

func (s *Server) report() *pipeline.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
