// Package server exposes the compositing engine over HTTP.
//
// Routes:
//   - POST /v1/compose: render a TOML scene manifest to PNG
//   - GET  /v1/jobs: recent render history
//   - GET  /v1/jobs/{id}: one history entry
//   - GET  /healthz: liveness probe
//
// Rendered artifacts are cached by scene content hash, so posting an
// unchanged manifest returns the cached bytes without re-compositing.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/pixelflex/pkg/cache"
	"github.com/matzehuels/pixelflex/pkg/compose"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/history"
	"github.com/matzehuels/pixelflex/pkg/scene"
	"github.com/matzehuels/pixelflex/pkg/sink"
)

const (
	maxManifestBytes = 1 << 20
	defaultCacheTTL  = 24 * time.Hour
	defaultJobLimit  = 50
)

// Config configures the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Cache stores rendered artifacts. Defaults to a null cache.
	Cache cache.Cache

	// Store records render history. Defaults to an in-memory store.
	Store history.Store

	// Logger receives request and render logs. Defaults to log.Default().
	Logger *log.Logger

	// Parallel is the sibling-render worker count passed to the compositor.
	Parallel int

	// CacheTTL bounds artifact lifetime. Defaults to 24h.
	CacheTTL time.Duration
}

// Server handles compose requests over HTTP.
type Server struct {
	cfg    Config
	keyer  cache.Keyer
	router chi.Router
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Store == nil {
		cfg.Store = history.NewMemoryStore(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	s := &Server{
		cfg:   cfg,
		keyer: cache.NewDefaultKeyer(),
	}

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/compose", s.handleCompose)
		r.Get("/jobs", s.handleJobs)
		r.Get("/jobs/{id}", s.handleJob)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger assigns a request id and logs method, path, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(w, r)

		s.cfg.Logger.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxManifestBytes+1))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	if len(body) > maxManifestBytes {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "manifest exceeds %d bytes", maxManifestBytes))
		return
	}

	sceneHash := cache.Hash(body)
	key := s.keyer.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{Format: "png"})

	if data, hit, err := s.cfg.Cache.Get(ctx, key); err == nil && hit {
		s.recordJob(ctx, sceneHash, 0, 0, len(data), 0, true)
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-Cache", "HIT")
		_, _ = w.Write(data)
		return
	}

	m, err := scene.Parse(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	root, err := m.Build()
	if err != nil {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	out, err := compose.Render(ctx, root, compose.WithParallel(s.cfg.Parallel))
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := sink.EncodePNG(ctx, out)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.cfg.Cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.cfg.Logger.Warn("cache set failed", "err", err)
	}
	s.recordJob(ctx, sceneHash, out.Width(), out.Height(), len(data), time.Since(start), false)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(data)
}

func (s *Server) recordJob(ctx context.Context, sceneHash string, w, h, bytes int, d time.Duration, cached bool) {
	job := history.NewJob(sceneHash, w, h, "png")
	job.Bytes = bytes
	job.Duration = d
	job.Cached = cached
	if err := s.cfg.Store.Record(ctx, job); err != nil {
		s.cfg.Logger.Warn("record job failed", "err", err)
	}
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	limit := defaultJobLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	jobs, err := s.cfg.Store.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*history.Job{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDimensions, errors.ErrCodeInvalidPolicy,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeFontNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.cfg.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
