package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iskolar-ocr/internal/audit"
	"github.com/iskolar-ocr/internal/eligibility"
	"github.com/iskolar-ocr/internal/metrics"
	"github.com/iskolar-ocr/internal/web/handlers"
	"github.com/iskolar-ocr/internal/web/middleware"
)

// Deps are the collaborators the server wires into its handlers
type Deps struct {
	Engine   *eligibility.Engine
	Store    audit.Store
	Policy   eligibility.PolicyConfig
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Server represents the web server
type Server struct {
	config     *Config
	deps       Deps
	httpServer *http.Server
	router     *mux.Router
	handler    http.Handler
}

// NewServer creates a new web server instance
func NewServer(cfg *Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Engine == nil {
		deps.Engine = eligibility.NewEngine(nil)
	}
	if deps.Store == nil {
		deps.Store = audit.NewMemoryStore()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	s := &Server{config: cfg, deps: deps}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	checks := &handlers.ChecksHandler{
		Engine:  s.deps.Engine,
		Store:   s.deps.Store,
		Metrics: metrics.New(s.deps.Registry),
		Logger:  s.deps.Logger,
		Config: &handlers.Config{
			Policy:      s.deps.Policy,
			BatchLimit:  s.config.Features.BatchLimit,
			Parallelism: s.config.Features.Parallelism,
		},
	}

	s.router.HandleFunc("/healthz", handlers.Health).Methods("GET")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.deps.Registry, promhttp.HandlerOpts{})).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/validate", checks.Validate).Methods("POST")
	api.HandleFunc("/validate/batch", checks.ValidateBatch).Methods("POST")
	api.HandleFunc("/detect", checks.Detect).Methods("POST")
	api.HandleFunc("/checks/{id}", checks.GetCheck).Methods("GET")
	api.HandleFunc("/applicants/{ref}/checks", checks.ListApplicantChecks).Methods("GET")

	s.router.Use(middleware.RequestLogging(s.deps.Logger))
	if s.config.Auth.Enabled {
		api.Use(middleware.APIKey(s.config.Auth.APIKeys, s.deps.Logger))
	}

	// CORS wraps the router so preflight requests reach it before method matching
	s.handler = middleware.CORS(s.config.CORS.AllowedOrigins)(s.router)
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.deps.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.deps.Logger.Info("server stopped")
	return nil
}
