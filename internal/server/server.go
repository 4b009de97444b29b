// Package server exposes the pipeline over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/metrics"
	"github.com/ppiankov/geolens/internal/pipeline"
)

const (
	maxRequestBytes = 4 << 20
	shutdownTimeout = 10 * time.Second
)

// Server serves one orchestrator session. Requests that start an analysis
// while another is running get 409.
type Server struct {
	orch     *pipeline.Orchestrator
	fetcher  *pipeline.Fetcher
	metrics  *metrics.Metrics
	logger   *zap.Logger
	requests *validator.Validate
	timeout  time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithFetcher enables analysis of URLs
func WithFetcher(f *pipeline.Fetcher) Option {
	return func(s *Server) { s.fetcher = f }
}

// WithMetrics exposes m on /metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAnalyzeTimeout bounds a single analyze request
func WithAnalyzeTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server around o
func New(o *pipeline.Orchestrator, opts ...Option) *Server {
	s := &Server{
		orch:     o,
		logger:   zap.NewNop(),
		requests: validator.New(),
		timeout:  2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))

	router.Get("/healthz", s.health)
	if s.metrics != nil {
		router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	router.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.analyze)
		r.Get("/session", s.session)
		r.Post("/select", s.selectTargets)
		r.Post("/accept", s.accept)
		r.Post("/reset", s.reset)
		r.Post("/spec", s.generateSpec)
		r.Get("/spec", s.exportSpec)
		r.Put("/spec", s.importSpec)
	})

	return router
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
