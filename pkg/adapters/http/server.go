package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Akhilesh30Jadhav/Shushrusha/internal/logging"
	"github.com/Akhilesh30Jadhav/Shushrusha/internal/observability"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/scenario"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Server exposes the simulator over a JSON API.
type Server struct {
	sessions  *session.Manager
	scenarios *scenario.Store
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the simulator API.
func NewHandler(sessions *session.Manager, scenarios *scenario.Store, opts ...Option) http.Handler {
	s := &Server{
		sessions:  sessions,
		scenarios: scenarios,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/languages", s.GetLanguages)
	r.Get("/scenarios", s.GetScenarios)
	r.Post("/sessions/start", s.StartSession)
	r.Get("/sessions/history", s.GetHistory)
	r.Post("/sessions/{sessionID}/turn", s.SubmitTurn)
	r.Post("/sessions/{sessionID}/complete", s.CompleteSession)
	r.Get("/sessions/{sessionID}/report", s.GetReport)
	r.Handle("/metrics", observability.Handler())

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// -- Request/response shapes --

type startRequest struct {
	ScenarioID string `json:"scenario_id"`
	Lang       string `json:"lang"`
	DeviceID   string `json:"device_id,omitempty"`
}

type nodeContent struct {
	NodeKey     string `json:"node_key"`
	PatientText string `json:"patient_text"`
}

type startResponse struct {
	SessionID string                 `json:"session_id"`
	Node      nodeContent            `json:"node"`
	Scenario  domain.ScenarioSummary `json:"scenario"`
}

type turnRequest struct {
	NodeKey  string `json:"node_key"`
	UserText string `json:"user_text"`
}

type progress struct {
	TurnIndex          int `json:"turn_index"`
	TotalTurnsEstimate int `json:"total_turns_estimate"`
}

type turnResponse struct {
	NextNode   *nodeContent          `json:"next_node"`
	Evaluation domain.TurnEvaluation `json:"evaluation"`
	Progress   progress              `json:"progress"`
	IsComplete bool                  `json:"is_complete"`
}

type completeResponse struct {
	Report domain.SessionReport `json:"report"`
}

type sessionSummary struct {
	SessionID     string   `json:"session_id"`
	ScenarioID    string   `json:"scenario_id"`
	ScenarioTitle string   `json:"scenario_title"`
	Language      string   `json:"language"`
	StartedAt     string   `json:"started_at"`
	CompletedAt   string   `json:"completed_at,omitempty"`
	Score         *float64 `json:"score"`
}

type historyResponse struct {
	Sessions []sessionSummary `json:"sessions"`
}

type reportResponse struct {
	sessionSummary
	Report *domain.SessionReport `json:"report"`
}

type languagesResponse struct {
	Languages []domain.Language `json:"languages"`
}

// -- Handlers --

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetLanguages handles GET /languages.
func (s *Server) GetLanguages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, languagesResponse{Languages: domain.SupportedLanguages()})
}

// GetScenarios handles GET /scenarios?lang=.
func (s *Server) GetScenarios(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = domain.LangEnglish
	}

	summaries, err := s.scenarios.ScenariosForLanguage(lang)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load scenarios")
		s.logger.Error("scenario listing failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

// StartSession handles POST /sessions/start.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Lang == "" {
		req.Lang = domain.LangEnglish
	}

	result, err := s.sessions.Start(r.Context(), req.ScenarioID, req.Lang, req.DeviceID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, startResponse{
		SessionID: result.Session.ID,
		Node: nodeContent{
			NodeKey:     result.Node.NodeKey,
			PatientText: result.Node.PatientText,
		},
		Scenario: result.Scenario,
	})
}

// SubmitTurn handles POST /sessions/{sessionID}/turn.
func (s *Server) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.sessions.SubmitTurn(r.Context(), sessionID, req.NodeKey, req.UserText)
	if err != nil {
		// An unknown node key on a live session is a client mistake,
		// not a missing resource.
		if errors.Is(err, domain.ErrNodeNotFound) {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid node key: %s", req.NodeKey))
			return
		}
		s.writeDomainError(w, err)
		return
	}

	resp := turnResponse{
		Evaluation: result.Evaluation,
		Progress: progress{
			TurnIndex:          result.TurnIndex,
			TotalTurnsEstimate: result.TotalTurnsEstimate,
		},
		IsComplete: result.Complete,
	}
	if result.NextNode != nil {
		resp.NextNode = &nodeContent{
			NodeKey:     result.NextNode.NodeKey,
			PatientText: result.NextNode.PatientText,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// CompleteSession handles POST /sessions/{sessionID}/complete.
func (s *Server) CompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	report, err := s.sessions.Complete(r.Context(), sessionID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, completeResponse{Report: *report})
}

// GetHistory handles GET /sessions/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	summaries, err := s.sessions.History(r.Context(), deviceID, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load history")
		s.logger.Error("history failed", "err", err)
		return
	}

	resp := historyResponse{Sessions: make([]sessionSummary, 0, len(summaries))}
	for _, sum := range summaries {
		resp.Sessions = append(resp.Sessions, mapSummary(sum))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetReport handles GET /sessions/{sessionID}/report.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	view, err := s.sessions.Report(r.Context(), sessionID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reportResponse{
		sessionSummary: mapSummary(view.Summary),
		Report:         view.Report,
	})
}

// -- Helpers --

func mapSummary(sum session.Summary) sessionSummary {
	return sessionSummary{
		SessionID:     sum.SessionID,
		ScenarioID:    sum.ScenarioID,
		ScenarioTitle: sum.ScenarioTitle,
		Language:      sum.Language,
		StartedAt:     sum.StartedAt,
		CompletedAt:   sum.CompletedAt,
		Score:         sum.Score,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

// writeDomainError maps core sentinel errors onto HTTP statuses:
// not-found conditions are 404s, client mistakes are 400s, and content
// misconfiguration is a 500.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, domain.ErrScenarioNotFound):
		s.writeError(w, http.StatusNotFound, "Scenario not found")
	case errors.Is(err, domain.ErrNodeNotFound):
		s.writeError(w, http.StatusNotFound, "Node not found")
	case errors.Is(err, domain.ErrSessionCompleted):
		s.writeError(w, http.StatusBadRequest, "Session already completed")
	case errors.Is(err, domain.ErrNoStartNode):
		s.writeError(w, http.StatusInternalServerError, "Scenario has no start node")
	default:
		s.writeError(w, http.StatusInternalServerError, "Internal error")
		s.logger.Error("request failed", "err", err)
	}
}
