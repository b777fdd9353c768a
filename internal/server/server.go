// Package server exposes infill generation over HTTP.
//
// # Routes
//
//	GET  /healthz       build information
//	POST /v1/generate   run file JSON in, generation result out
//	POST /v1/holes      frame and rods in, holes and quality scores out
//
// Requests and responses are JSON. Every response carries an X-Request-Id
// header; a client-supplied one is echoed back. Errors use the shape
//
//	{"error": {"code": "INVALID_PARAMS", "message": "..."}, "request_id": "..."}
//
// with the status derived from the error code.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/railfill/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr          = ":8080"
	DefaultTimeout       = 2 * time.Minute
	DefaultMaxBodyBytes  = 1 << 20
	DefaultMaxConcurrent = 4

	shutdownTimeout = 10 * time.Second
)

// Config controls the HTTP server.
type Config struct {
	Addr string
	// Timeout caps how long one generation may run. Requests asking for a
	// longer evaluation budget are clamped.
	Timeout time.Duration
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64
	// MaxConcurrent limits simultaneous generations; further requests wait
	// in a backlog of the same size.
	MaxConcurrent int
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:          DefaultAddr,
		Timeout:       DefaultTimeout,
		MaxBodyBytes:  DefaultMaxBodyBytes,
		MaxConcurrent: DefaultMaxConcurrent,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	return c
}

// Server serves the railfill HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New creates a server generating through runner.
// A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
		cfg:    cfg.withDefaults(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Config returns the effective configuration.
func (s *Server) Config() Config { return s.cfg }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.RequestSize(s.cfg.MaxBodyBytes))
		r.With(middleware.Throttle(s.cfg.MaxConcurrent)).Post("/generate", s.handleGenerate)
		r.Post("/holes", s.handleHoles)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r))
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
