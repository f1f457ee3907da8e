// Package server exposes trace generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/24dai03-saifchaus/algonexus/internal/algorithms"
	"github.com/24dai03-saifchaus/algonexus/internal/cache"
	"github.com/24dai03-saifchaus/algonexus/internal/codepanel"
	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/input"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBody bounds POST /traces request bodies.
const maxBody = 1 << 20

// DefaultMaxDatasetSize bounds request datasets. Sort traces grow
// quadratically with the dataset and every step copies it.
const DefaultMaxDatasetSize = 100

type Server struct {
	registry   *experiment.Registry
	store      cache.Store
	log        *slog.Logger
	metrics    *Metrics
	maxDataset int
}

type Option func(*Server)

// WithMaxDatasetSize overrides the dataset size limit. Values below 1 keep the
// default.
func WithMaxDatasetSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxDataset = n
		}
	}
}

// New builds a server. store may be nil, in which case every request
// generates its trace.
func New(registry *experiment.Registry, store cache.Store, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		registry:   registry,
		store:      store,
		log:        log,
		metrics:    NewMetrics(),
		maxDataset: DefaultMaxDatasetSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.health)
	r.Get("/algorithms", s.listAlgorithms)
	r.Get("/algorithms/{name}/code", s.code)
	r.Post("/traces", s.createTrace)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// TraceRequest is the body of POST /traces. Input and Target are raw text
// parsed like interactive input.
type TraceRequest struct {
	Algorithm string `json:"algorithm"`
	Input     string `json:"input"`
	Target    string `json:"target"`
}

type TraceResponse struct {
	Algorithm string             `json:"algorithm"`
	Input     []int              `json:"input"`
	Target    *int               `json:"target"`
	Steps     trace.Trace        `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	Succeeded bool               `json:"succeeded"`
	Cached    bool               `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listAlgorithms(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.registry.Infos())
}

func (s *Server) code(w http.ResponseWriter, r *http.Request) {
	info, err := s.registry.Info(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	lang := codepanel.Cpp
	if q := r.URL.Query().Get("lang"); q != "" {
		if lang, err = codepanel.ParseLanguage(q); err != nil {
			s.writeError(w, err)
			return
		}
	}

	src, err := codepanel.Snippet(info.ID, lang)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"algorithm": info.ID,
		"language":  string(lang),
		"code":      src,
	})
}

func (s *Server) createTrace(w http.ResponseWriter, r *http.Request) {
	var req TraceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		s.log.Warn("invalid trace request", "error", err)
		return
	}

	cfg := experiment.Config{
		Algorithm: req.Algorithm,
		Input:     input.ParseDataset(req.Input),
	}
	if info, err := s.registry.Info(req.Algorithm); err == nil && info.Category == algorithms.Searching {
		cfg.Target = input.ParseTarget(req.Target)
	}
	if len(cfg.Input) > s.maxDataset {
		s.writeError(w, fmt.Errorf("%w: %d values, limit is %d", trace.ErrDatasetTooLarge, len(cfg.Input), s.maxDataset))
		return
	}

	res, hit, err := cache.Generate(r.Context(), s.store, s.registry, cfg, s.log)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.observe(res.Config.Algorithm, len(res.Trace), hit)

	var target *int
	if res.Config.Target.Valid {
		v := res.Config.Target.Value
		target = &v
	}
	s.writeJSON(w, http.StatusOK, TraceResponse{
		Algorithm: res.Config.Algorithm,
		Input:     trace.Snapshot(res.Config.Input),
		Target:    target,
		Steps:     res.Trace,
		Metrics:   res.Metrics,
		Succeeded: res.Trace.Succeeded(),
		Cached:    hit,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, trace.ErrUnsupportedAlgorithm), errors.Is(err, codepanel.ErrNoSnippet):
		return http.StatusNotFound
	case errors.Is(err, trace.ErrEmptyDataset), errors.Is(err, trace.ErrDatasetTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, codepanel.ErrUnknownLanguage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encode failed", "error", err)
	}
}
