package editor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clipforge/internal/media"
	"clipforge/internal/snapshot"
)

// Server exposes the read side of an open project over HTTP so rendering
// collaborators and debug tooling can inspect the timeline without going
// through the UI shell.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds an HTTP server bound to addr serving the project API.
func NewServer(addr string, e *Editor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api")

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(e, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured bind address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// NewRouter wires the API routes. Split out from NewServer so tests can
// drive the handlers through httptest without a listener.
func NewRouter(e *Editor, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware())
	r.Use(recoveryMiddleware(logger))
	r.Use(loggingMiddleware(logger))

	r.Get("/health", healthHandler())
	r.Get("/api/status", statusHandler(e))
	r.Get("/api/clips", listClipsHandler(e))
	r.Get("/api/clips/{id}", getClipHandler(e))
	r.Get("/api/snapshot", snapshotHandler(e))

	return r
}

type healthResponse struct {
	Status string `json:"status"`
}

type statusResponse struct {
	ClipCount      int     `json:"clip_count"`
	Playhead       float64 `json:"playhead"`
	Zoom           float64 `json:"zoom"`
	SelectedClipID string  `json:"selected_clip_id,omitempty"`
	ActiveClipID   string  `json:"active_clip_id,omitempty"`
	Loading        bool    `json:"loading"`
}

type clipResponse struct {
	ID             string  `json:"id"`
	SourceID       string  `json:"source_id"`
	SourcePath     string  `json:"source_path"`
	Name           string  `json:"name"`
	Track          int     `json:"track"`
	TimelineStart  float64 `json:"timeline_start"`
	TimelineEnd    float64 `json:"timeline_end"`
	TrimStart      float64 `json:"trim_start"`
	TrimEnd        float64 `json:"trim_end"`
	SourceDuration float64 `json:"source_duration"`
	Volume         float64 `json:"volume"`
	Muted          bool    `json:"muted"`
}

type clipsResponse struct {
	Clips []clipResponse `json:"clips"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

func statusHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp statusResponse
		e.View(func(s *Session) {
			resp = statusResponse{
				ClipCount:      s.Ops().Repo().Len(),
				Playhead:       s.Ops().Playhead(),
				Zoom:           s.Zoom(),
				SelectedClipID: s.Ops().SelectedClipID(),
				ActiveClipID:   s.Sync().ActiveClipID(),
				Loading:        s.Sync().Loading(),
			}
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

func listClipsHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := clipsResponse{Clips: []clipResponse{}}
		e.View(func(s *Session) {
			for _, clip := range s.Ops().Repo().All() {
				resp.Clips = append(resp.Clips, clipResponse(clip))
			}
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

func getClipHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "clip id required", "BAD_REQUEST")
			return
		}

		var (
			resp  clipResponse
			found bool
		)
		e.View(func(s *Session) {
			clip, err := s.Ops().Repo().Get(id)
			if err != nil {
				return
			}
			resp = clipResponse(clip)
			found = true
		})
		if !found {
			writeError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func snapshotHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snap snapshot.Snapshot
		e.View(func(s *Session) {
			snap = snapshot.Capture(s.Ops(), s.Zoom())
		})
		writeJSON(w, http.StatusOK, snap)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

func requestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := media.NewID()[:8]
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			requestID, _ := r.Context().Value(requestIDKey).(string)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", requestID,
			)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID, _ := r.Context().Value(requestIDKey).(string)
					logger.Error("panic recovered", "error", err, "request_id", requestID)
					writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
