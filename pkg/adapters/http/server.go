package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/moodbot"
	"github.com/aretw0/moodbot/internal/logging"
	"github.com/aretw0/moodbot/internal/presentation/graph"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/runner"
	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/aretw0/moodbot/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AppName is reported by GET /info.
const AppName = "moodbot-http"

// Analyzer scores text outside of any conversation.
type Analyzer interface {
	Analyze(text string) sentiment.Result
	Explain(text string) sentiment.Breakdown
}

// TextRequest is the body of POST /analyze and POST /sessions/{id}/messages.
type TextRequest struct {
	Text *string `json:"text"`
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Name string `json:"name,omitempty"`
}

// CreateSessionResponse is returned by POST /sessions.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// MessageResponse is returned by POST /sessions/{id}/messages.
type MessageResponse struct {
	Reply     string           `json:"reply"`
	Sentiment sentiment.Result `json:"sentiment"`
}

// HistoryResponse is returned by GET /sessions/{id}/history.
type HistoryResponse struct {
	SessionID string                  `json:"session_id"`
	UserName  string                  `json:"user_name,omitempty"`
	Exchanges []conversation.Exchange `json:"exchanges"`
}

// Server serves the API on top of an Analyzer and a session Manager.
type Server struct {
	Analyzer Analyzer
	Sessions *session.Manager
	Streams  *StreamManager

	version   string
	metrics   http.Handler
	onAnalyze func(sentiment.Result)
	maxInput  int
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(v)
	}
}

// WithMetricsHandler replaces the default promhttp handler mounted on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithAnalyzeObserver is called with the result of every POST /analyze.
func WithAnalyzeObserver(fn func(sentiment.Result)) Option {
	return func(s *Server) {
		s.onAnalyze = fn
	}
}

// WithMaxInputSize sets the byte limit for message and analyze text.
// Zero or less keeps runner.DefaultMaxInputSize.
func WithMaxInputSize(limit int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxInput = limit
		}
	}
}

// NewServer creates a Server.
func NewServer(analyzer Analyzer, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Analyzer: analyzer,
		Sessions: sessions,
		Streams:  NewStreamManager(),
		version:  strings.TrimSpace(moodbot.Version),
		metrics:  promhttp.Handler(),
		maxInput: runner.DefaultMaxInputSize,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates a new HTTP handler serving the full API.
func NewHandler(analyzer Analyzer, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(analyzer, sessions, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/analyze", s.Analyze)
	r.Method(http.MethodGet, "/metrics", s.metrics)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.DeleteSession)
			r.Post("/messages", s.SendMessage)
			r.Get("/trend", s.GetTrend)
			r.Get("/history", s.GetHistory)
			r.Get("/graph", s.GetGraph)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     AppName,
		"version": s.version,
	})
}

// Analyze handles the POST /analyze request.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r, "Analyze", true)
	if !ok {
		return
	}

	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))
	if explain {
		b := s.Analyzer.Explain(text)
		s.observe(b.Result)
		s.writeJSON(w, http.StatusOK, b)
		return
	}

	res := s.Analyzer.Analyze(text)
	s.observe(res)
	s.writeJSON(w, http.StatusOK, res)
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateSession: Invalid request body", "err", err)
		return
	}

	name := body.Name
	if name != "" {
		clean, err := runner.SanitizeInputLimit(name, s.maxInput)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid name: %v", err), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(clean) == "" {
			http.Error(w, "Invalid name: must not be blank", http.StatusBadRequest)
			return
		}
		name = clean
	}

	id, err := s.Sessions.Create(r.Context(), name)
	if err != nil {
		if errors.Is(err, conversation.ErrEmptyName) {
			http.Error(w, fmt.Sprintf("Invalid name: %v", err), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Create session error: %v", err), http.StatusInternalServerError)
		s.logger.Error("CreateSession failed", "err", err)
		return
	}

	s.logger.Info("Session started", "session_id", id)
	w.Header().Set("Location", "/sessions/"+id)
	s.writeJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: id})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.Sessions.List()})
}

// SendMessage handles the POST /sessions/{id}/messages request.
func (s *Server) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, ok := s.decodeText(w, r, "SendMessage", false)
	if !ok {
		return
	}

	var resp MessageResponse
	err := s.Sessions.WithSession(r.Context(), id, func(ctx context.Context, tr *conversation.Tracker) error {
		resp.Reply, resp.Sentiment = tr.Respond(text)
		return nil
	})
	if s.sessionError(w, "SendMessage", id, err) {
		return
	}

	if payload, err := json.Marshal(runner.Turn{
		Kind:      runner.TurnReply,
		Input:     text,
		Reply:     resp.Reply,
		Sentiment: &resp.Sentiment,
	}); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// GetTrend handles the GET /sessions/{id}/trend request.
func (s *Server) GetTrend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var report conversation.Report
	err := s.Sessions.WithSession(r.Context(), id, func(ctx context.Context, tr *conversation.Tracker) error {
		report = tr.TrendReport()
		return nil
	})
	if s.sessionError(w, "GetTrend", id, err) {
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetHistory handles the GET /sessions/{id}/history request.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp := HistoryResponse{SessionID: id}
	err := s.Sessions.WithSession(r.Context(), id, func(ctx context.Context, tr *conversation.Tracker) error {
		resp.UserName = tr.UserName()
		resp.Exchanges = tr.Exchanges()
		return nil
	})
	if s.sessionError(w, "GetHistory", id, err) {
		return
	}
	if resp.Exchanges == nil {
		resp.Exchanges = []conversation.Exchange{}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetGraph handles the GET /sessions/{id}/graph request.
// The body is a Mermaid flowchart of the recent exchanges.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var chart string
	err := s.Sessions.WithSession(r.Context(), id, func(ctx context.Context, tr *conversation.Tracker) error {
		report := tr.TrendReport()
		chart = graph.GenerateMermaid(tr.Exchanges(), &graph.Overlay{Trend: &report})
		return nil
	})
	if s.sessionError(w, "GetGraph", id, err) {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, chart); err != nil {
		s.logger.Error("GetGraph write failed", "err", err)
	}
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.sessionError(w, "DeleteSession", id, s.Sessions.Delete(r.Context(), id)) {
		return
	}
	s.Streams.Close(id)
	s.logger.Info("Session ended", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeText reads a TextRequest and sanitizes it. allowEmpty controls whether
// a blank text is accepted.
func (s *Server) decodeText(w http.ResponseWriter, r *http.Request, op string, allowEmpty bool) (string, bool) {
	var body TextRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn(op+": Invalid request body", "err", err)
		return "", false
	}
	if body.Text == nil {
		http.Error(w, "Invalid request body: missing text", http.StatusBadRequest)
		return "", false
	}

	clean, err := runner.SanitizeInputLimit(*body.Text, s.maxInput)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn(op+": Input rejected", "err", err, "size", len(*body.Text))
		return "", false
	}
	if !allowEmpty && strings.TrimSpace(clean) == "" {
		http.Error(w, "Invalid input: text must not be blank", http.StatusBadRequest)
		return "", false
	}
	return clean, true
}

// sessionError writes the response for a failed session operation and reports
// whether it did.
func (s *Server) sessionError(w http.ResponseWriter, op, id string, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, session.ErrSessionNotFound) {
		http.Error(w, fmt.Sprintf("Session not found: %s", id), http.StatusNotFound)
		return true
	}
	if errors.Is(err, context.Canceled) {
		s.logger.Debug(op+": Request cancelled", "session_id", id)
		return true
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
	s.logger.Error(op+" failed", "session_id", id, "err", err)
	return true
}

func (s *Server) observe(res sentiment.Result) {
	if s.onAnalyze != nil {
		s.onAnalyze(res)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
