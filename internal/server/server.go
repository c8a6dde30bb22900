// Package server exposes the layout engine over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/openaims/sectorflow/internal/config"
	"github.com/openaims/sectorflow/pkg/classify"
	"github.com/openaims/sectorflow/pkg/engine"
	"github.com/openaims/sectorflow/pkg/store"
)

// Server is the HTTP server wrapping the layout engine, the classification
// lookup, and the saved-view store.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    *log.Logger

	runner *engine.Runner
	lookup *classify.Lookup
	views  store.Store
	cfg    config.Config
}

// Options holds the collaborators for a server.
type Options struct {
	Config config.Config
	Runner *engine.Runner
	Lookup *classify.Lookup
	Views  store.Store
	Logger *log.Logger
}

// New creates the HTTP server. Nil options fall back to defaults: the
// embedded classification dataset, an uncached runner, and a memory store.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Lookup == nil {
		opts.Lookup = classify.MustDefault()
	}
	if opts.Runner == nil {
		opts.Runner = engine.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Views == nil {
		opts.Views = store.NewMemoryStore()
	}

	s := &Server{
		router: chi.NewRouter(),
		log:    opts.Logger.With("component", "server"),
		runner: opts.Runner,
		lookup: opts.Lookup,
		views:  opts.Views,
		cfg:    opts.Config,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         opts.Config.Server.Listen,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	timeout := time.Duration(s.cfg.Server.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.router.Use(middleware.Timeout(timeout))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/classifications", func(r chi.Router) {
			r.Get("/", s.handleListClassifications)
			r.Get("/{code}", s.handleGetClassification)
		})

		r.Route("/views", func(r chi.Router) {
			r.Get("/", s.handleListViews)
			r.Post("/", s.handleCreateView)
			r.Get("/{id}", s.handleGetView)
			r.Delete("/{id}", s.handleDeleteView)
			r.Get("/{id}/layout", s.handleViewLayout)
		})
	})
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving. Blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
