// Package http exposes the machine registry over a chi router.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize bounds definition uploads.
const maxBodySize = 1 << 20

// Server holds the handler dependencies.
type Server struct {
	Registry     *registry.Registry
	Metrics      *observability.Metrics
	Logger       *slog.Logger
	MaxInputSize int

	modThree *automata.Engine
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records runs and serves /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMaxInputSize overrides the input size limit in bytes.
func WithMaxInputSize(size int) Option {
	return func(s *Server) {
		s.MaxInputSize = size
	}
}

// NewHandler creates the HTTP handler for the registry.
func NewHandler(reg *registry.Registry, opts ...Option) (http.Handler, error) {
	s := &Server{
		Registry:     reg,
		Logger:       slog.Default(),
		MaxInputSize: runner.MaxInputSize(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var engOpts []automata.Option
	if s.Metrics != nil {
		engOpts = append(engOpts, automata.WithLifecycleHooks(s.Metrics.Hooks()))
	}
	eng, err := modthree.New(engOpts...)
	if err != nil {
		return nil, err
	}
	s.modThree = eng

	return s.routes(), nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/", s.Welcome)
	r.Post("/modthree", s.ModThree)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetMachine)
			r.Put("/", s.PutMachine)
			r.Delete("/", s.DeleteMachine)
			r.Post("/process", s.ProcessInput)
			r.Get("/graph", s.GetGraph)
		})
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, HX-Request, HX-Target, HX-Trigger")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	resp := map[string]any{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
		"registry":    s.Registry.Stats(),
	}
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
