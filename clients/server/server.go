// Package server exposes the poster catalogue, editing sessions and the post
// queue over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/vck-social/postergen/pkg/canvas"
	"github.com/vck-social/postergen/pkg/queue"
	"github.com/vck-social/postergen/pkg/session"
	"github.com/vck-social/postergen/pkg/template"
)

const (
	maxUploadBytes  = 20 << 20
	maxBodyBytes    = 1 << 20
	sessionIdleTTL  = 2 * time.Hour
	reapInterval    = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

var errBadRequest = errors.New("bad request")

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	Registry     *template.Registry
	Fonts        *canvas.FontManager
	Queue        *queue.Queue // nil disables the queue routes
	PreviewScale float64
	ExportRPS    float64
	ExportBurst  int
}

// Server is the HTTP API.
type Server struct {
	reg          *template.Registry
	fonts        *canvas.FontManager
	queue        *queue.Queue
	sessions     *sessionManager
	previewScale float64
	limiter      *rate.Limiter
}

func New(opts Options) *Server {
	if opts.Registry == nil {
		opts.Registry = template.Default()
	}
	if opts.Fonts == nil {
		opts.Fonts = canvas.DefaultFonts()
	}
	if opts.PreviewScale <= 0 {
		opts.PreviewScale = 0.5
	}
	if opts.ExportRPS <= 0 {
		opts.ExportRPS = 2
	}
	if opts.ExportBurst < 1 {
		opts.ExportBurst = 4
	}
	return &Server{
		reg:          opts.Registry,
		fonts:        opts.Fonts,
		queue:        opts.Queue,
		sessions:     newSessionManager(),
		previewScale: opts.PreviewScale,
		limiter:      rate.NewLimiter(rate.Limit(opts.ExportRPS), opts.ExportBurst),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{sid}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Put("/fields", s.handleSetFields)
				r.Post("/reset", s.handleReset)
				r.Post("/images/{key}", s.handleUploadImage)
				r.Delete("/images/{key}", s.handleRemoveImage)

				r.Group(func(r chi.Router) {
					r.Use(throttle(s.limiter))
					r.Get("/preview", s.handlePreview)
					r.Get("/export", s.handleExport)
				})
			})
		})

		if s.queue != nil {
			r.Route("/queue", func(r chi.Router) {
				r.Get("/", s.handleListQueue)
				r.Post("/", s.handleAddQueue)
				r.Post("/batch", s.handleBatchQueue)
				r.Get("/due", s.handleDueQueue)
				r.Get("/stats", s.handleQueueStats)
				r.Put("/{id}/status", s.handleSetQueueStatus)
				r.Delete("/{id}", s.handleRemoveQueue)
			})
		}
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.reap(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Int("templates", s.reg.Len()).Msg("postergen server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) reap(ctx context.Context) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.sessions.expire(sessionIdleTTL); n > 0 {
				log.Debug().Int("expired", n).Int("active", s.sessions.len()).Msg("expired idle sessions")
			}
		case <-ctx.Done():
			return
		}
	}
}

// ── Responses ──

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, template.ErrNotFound),
		errors.Is(err, queue.ErrNotFound),
		errors.Is(err, errSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnknownField),
		errors.Is(err, session.ErrInvalidScale),
		errors.Is(err, queue.ErrInvalidRecord),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrSuperseded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg = "internal server error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", errBadRequest, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"templates": s.reg.Len(),
		"sessions":  s.sessions.len(),
	})
}
