// Package server implements the HTTP front of the bridge: it resolves the
// request's session (initializing one on first contact), asks the session's
// provider for the UI bound to the request path, and delegates rendering to
// the UI instance. Unresolvable paths are a 404; a failed session
// initialization is a 500.
package server

import (
	"log/slog"
	"net/http"

	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/session"
	"github.com/vk/uibridge/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Server dispatches HTTP requests to per-session UI instances.
type Server struct {
	logger   *slog.Logger
	sessions *session.Manager
	tracer   *telemetry.Tracer

	pushPath    string
	pushHandler http.Handler
}

// New creates a dispatch server over the given session manager.
func New(logger *slog.Logger, sessions *session.Manager, tracer *telemetry.Tracer) *Server {
	return &Server{
		logger:   logger,
		sessions: sessions,
		tracer:   tracer,
	}
}

// MountPush mounts the push transport handler at the given path prefix.
func (s *Server) MountPush(path string, h http.Handler) {
	s.pushPath = path
	s.pushHandler = h
}

// Handler builds the root http.Handler: health endpoint, optional push
// endpoint, and UI dispatch for everything else.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.health)
	if s.pushHandler != nil {
		mux.Handle(s.pushPath, s.pushHandler)
	}
	mux.HandleFunc("/", s.dispatch)
	return mux
}

// health answers liveness probes.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

// dispatch runs the full request chain: session, path resolution, UI
// instance, render.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithLogger(r.Context(), s.logger)
	ctx, span := s.tracer.Start(ctx, "uibridge.dispatch",
		attribute.String("http.method", r.Method),
		attribute.String("http.path", r.URL.Path),
	)
	defer span.End()

	sess, err := s.sessions.Resolve(ctx, w, r)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Session initialization failed.", "path", r.URL.Path, "error", err)
		http.Error(w, "session initialization failed", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.String("uibridge.session", sess.ID))

	name, ok := sess.Provider().Resolve(r.URL.Path)
	if !ok {
		s.logger.Debug("No UI bound to path.", "path", r.URL.Path, "session", sess.ID)
		http.NotFound(w, r)
		return
	}
	span.SetAttributes(attribute.String("uibridge.ui", name))

	instance, err := sess.UI(ctx, name)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("UI creation failed.", "ui", name, "session", sess.ID, "error", err)
		http.Error(w, "UI creation failed", http.StatusInternalServerError)
		return
	}

	if err := instance.Render(ctx, w, r); err != nil {
		// Headers may already be written; all we can do is record it.
		span.RecordError(err)
		s.logger.Error("UI render failed.", "ui", name, "session", sess.ID, "error", err)
	}
}
