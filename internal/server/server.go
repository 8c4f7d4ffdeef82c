// Package server exposes the vehicle lookups and saved selections as a
// small JSON API for browser front ends.
//
// Routes:
//
//	GET    /api/vehicles/years
//	GET    /api/vehicles/makes?year=2020
//	GET    /api/vehicles/models?year=2020&make=Toyota
//	GET    /api/selections/{profile}
//	PUT    /api/selections/{profile}
//	DELETE /api/selections/{profile}
//	GET    /healthz
//	GET    /metrics   (when a metrics handler is configured)
//
// List responses use the same {"data": [...]} envelope as the upstream API.
// Failures are rendered as [vehicles.APIError] JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"

	"github.com/matzehuels/vehiclelookup/pkg/selection"
)

// Lookup is the set of vehicle lookups the server forwards to.
// *vehicles.Client satisfies it.
type Lookup interface {
	Years(ctx context.Context) ([]int, error)
	Makes(ctx context.Context, year int) ([]string, error)
	Models(ctx context.Context, year int, makeName string) ([]string, error)
}

// Options configures optional server behaviour.
type Options struct {
	// AllowedOrigins lists CORS origins; empty allows all.
	AllowedOrigins []string

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// Server routes HTTP requests to lookups and the selection store.
type Server struct {
	lookup Lookup
	store  selection.Store
	logger *log.Logger
	opts   Options
}

// New creates a Server. A nil logger uses log.Default().
func New(lookup Lookup, store selection.Store, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{lookup: lookup, store: store, logger: logger, opts: opts}
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/years", s.handleYears)
			r.Get("/makes", s.handleMakes)
			r.Get("/models", s.handleModels)
		})
		r.Route("/selections/{profile}", func(r chi.Router) {
			r.Get("/", s.handleGetSelection)
			r.Put("/", s.handlePutSelection)
			r.Delete("/", s.handleDeleteSelection)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", middleware.RequestIDHeader}),
	)
	return cors(r)
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully,
// waiting at most shutdownTimeout for in-flight requests.
func Run(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// accessLog logs one line per request after it completes.
func accessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start).Round(time.Microsecond),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
