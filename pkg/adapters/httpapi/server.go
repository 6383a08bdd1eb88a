// Package httpapi exposes the conversation engine over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wanderplan/wanderplan/internal/engine"
	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/pkg/domain"
)

// Engine is the narrow orchestrator surface the transport needs.
type Engine interface {
	Submit(ctx context.Context, sessionID, text string) (engine.TurnResult, error)
	SubmitSelection(ctx context.Context, sessionID, token string) (engine.TurnResult, error)
}

// SessionLister lists known session IDs, for the sessions endpoint.
type SessionLister interface {
	List(ctx context.Context) ([]string, error)
}

// Server handles the HTTP surface.
type Server struct {
	engine   Engine
	sessions SessionLister
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSessionLister enables GET /sessions.
func WithSessionLister(lister SessionLister) Option {
	return func(s *Server) {
		s.sessions = lister
	}
}

// WithMetrics enables GET /metrics for the given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler builds the HTTP handler for the engine.
func NewHandler(eng Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: eng,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Post("/sessions/{sessionID}/messages", s.submitMessage)
	r.Post("/sessions/{sessionID}/selection", s.submitSelection)
	if s.sessions != nil {
		r.Get("/sessions", s.listSessions)
	}
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

type messageRequest struct {
	Text string `json:"text"`
}

type selectionRequest struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string             `json:"error"`
	Menu  []domain.MenuEntry `json:"menu,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) submitMessage(w http.ResponseWriter, r *http.Request) {
	var body messageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		s.writeError(w, http.StatusBadRequest, "request body must be JSON with a non-empty \"text\" field", nil)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	result, err := s.engine.Submit(r.Context(), sessionID, body.Text)
	if err != nil {
		s.logger.Error("turn failed", "session_id", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to process turn", nil)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) submitSelection(w http.ResponseWriter, r *http.Request) {
	var body selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		s.writeError(w, http.StatusBadRequest, "request body must be JSON with a non-empty \"token\" field", nil)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	result, err := s.engine.SubmitSelection(r.Context(), sessionID, body.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSelection) {
			// The engine still returns the current menu so the client can
			// re-render the valid choices.
			s.writeError(w, http.StatusUnprocessableEntity, result.Response, result.Menu)
			return
		}
		s.logger.Error("selection failed", "session_id", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to process selection", nil)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list sessions", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list sessions", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, menu []domain.MenuEntry) {
	s.writeJSON(w, status, errorResponse{Error: msg, Menu: menu})
}
