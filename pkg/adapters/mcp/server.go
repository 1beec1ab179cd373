package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/moodbot"
	"github.com/aretw0/moodbot/internal/logging"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/runner"
	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/aretw0/moodbot/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// ServerName identifies this server to MCP clients.
const ServerName = "moodbot-mcp"

// Analyzer scores text outside of any conversation.
type Analyzer interface {
	Analyze(text string) sentiment.Result
	Explain(text string) sentiment.Breakdown
}

// AnalyzeArgs are the arguments of the analyze_sentiment tool.
type AnalyzeArgs struct {
	Text    string `mapstructure:"text"`
	Explain bool   `mapstructure:"explain"`
}

// ChatArgs are the arguments of the chat tool.
type ChatArgs struct {
	SessionID string `mapstructure:"session_id"`
	Text      string `mapstructure:"text"`
	Name      string `mapstructure:"name"`
}

// SessionArgs are the arguments of tools that only address a session.
type SessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

// ChatResponse is the structured result of the chat tool.
type ChatResponse struct {
	SessionID string           `json:"session_id" jsonschema_description:"Session to pass on the next call"`
	Reply     string           `json:"reply" jsonschema_description:"The bot's reply"`
	Sentiment sentiment.Result `json:"sentiment" jsonschema_description:"Score and label of the message"`
}

// TrendResponse is the structured result of the sentiment_trend tool.
type TrendResponse struct {
	SessionID string              `json:"session_id"`
	Trend     conversation.Report `json:"trend" jsonschema_description:"Trend over the most recent exchanges"`
}

// EndResponse is the structured result of the end_session tool.
type EndResponse struct {
	SessionID string `json:"session_id"`
	Ended     bool   `json:"ended"`
}

// Server wraps the Bot and its sessions and exposes them as an MCP Server.
type Server struct {
	analyzer  Analyzer
	sessions  *session.Manager
	mcpServer *server.MCPServer
	onAnalyze func(sentiment.Result)
	maxInput  int
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures logging. Logs must never go to stdout under stdio transport.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAnalyzeObserver is called with the result of every analyze_sentiment call.
func WithAnalyzeObserver(fn func(sentiment.Result)) Option {
	return func(s *Server) {
		s.onAnalyze = fn
	}
}

// WithMaxInputSize sets the byte limit for tool text arguments.
// Zero or less keeps runner.DefaultMaxInputSize.
func WithMaxInputSize(limit int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxInput = limit
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(analyzer Analyzer, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		analyzer:  analyzer,
		sessions:  sessions,
		mcpServer: server.NewMCPServer(ServerName, strings.TrimSpace(moodbot.Version)),
		maxInput:  runner.DefaultMaxInputSize,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: analyze_sentiment
	analyzeTool := mcp.NewTool("analyze_sentiment",
		mcp.WithDescription("Score the sentiment of a text without starting a conversation."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to score")),
		mcp.WithBoolean("explain", mcp.Description("Include the matched positive and negative words")),
		mcp.WithOutputSchema[sentiment.Breakdown](),
	)
	s.mcpServer.AddTool(analyzeTool, mcp.NewStructuredToolHandler(s.handleAnalyze))

	// TOOL: chat
	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the bot. Omit session_id to start a new conversation; reuse the returned session_id to continue it."),
		mcp.WithString("text", mcp.Required(), mcp.Description("User message")),
		mcp.WithString("session_id", mcp.Description("Conversation to continue (optional)")),
		mcp.WithString("name", mcp.Description("User's display name, set once per conversation (optional)")),
		mcp.WithOutputSchema[ChatResponse](),
	)
	s.mcpServer.AddTool(chatTool, mcp.NewStructuredToolHandler(s.handleChat))

	// TOOL: sentiment_trend
	trendTool := mcp.NewTool("sentiment_trend",
		mcp.WithDescription("Summarize the sentiment of a conversation's recent exchanges."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation to summarize")),
		mcp.WithOutputSchema[TrendResponse](),
	)
	s.mcpServer.AddTool(trendTool, mcp.NewStructuredToolHandler(s.handleTrend))

	// TOOL: end_session
	endTool := mcp.NewTool("end_session",
		mcp.WithDescription("End a conversation and discard its history."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation to end")),
		mcp.WithOutputSchema[EndResponse](),
	)
	s.mcpServer.AddTool(endTool, mcp.NewStructuredToolHandler(s.handleEnd))
}

// decodeArgs maps raw tool arguments onto a typed struct.
func decodeArgs(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (sentiment.Breakdown, error) {
	var in AnalyzeArgs
	if err := decodeArgs(args, &in); err != nil {
		return sentiment.Breakdown{}, err
	}

	clean, err := runner.SanitizeInputLimit(in.Text, s.maxInput)
	if err != nil {
		s.logger.Warn("MCP Analyze: Input rejected", "err", err, "size", len(in.Text))
		return sentiment.Breakdown{}, fmt.Errorf("input rejected: %w", err)
	}

	var b sentiment.Breakdown
	if in.Explain {
		b = s.analyzer.Explain(clean)
	} else {
		b = sentiment.Breakdown{Result: s.analyzer.Analyze(clean)}
	}
	if s.onAnalyze != nil {
		s.onAnalyze(b.Result)
	}
	return b, nil
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ChatResponse, error) {
	var in ChatArgs
	if err := decodeArgs(args, &in); err != nil {
		return ChatResponse{}, err
	}

	clean, err := runner.SanitizeInputLimit(in.Text, s.maxInput)
	if err != nil {
		s.logger.Warn("MCP Chat: Input rejected", "err", err, "size", len(in.Text))
		return ChatResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return ChatResponse{}, errors.New("input rejected: text must not be blank")
	}

	id := in.SessionID
	if id == "" {
		id, err = s.sessions.Create(ctx, in.Name)
		if err != nil {
			return ChatResponse{}, err
		}
		s.logger.Info("MCP Chat: Session started", "session_id", id)
	}

	resp := ChatResponse{SessionID: id}
	err = s.sessions.WithSession(ctx, id, func(ctx context.Context, tr *conversation.Tracker) error {
		if strings.TrimSpace(in.Name) != "" && tr.UserName() == "" {
			if err := tr.SetUserName(in.Name); err != nil {
				return err
			}
		}
		resp.Reply, resp.Sentiment = tr.Respond(clean)
		return nil
	})
	if err != nil {
		return ChatResponse{}, err
	}
	return resp, nil
}

func (s *Server) handleTrend(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TrendResponse, error) {
	var in SessionArgs
	if err := decodeArgs(args, &in); err != nil {
		return TrendResponse{}, err
	}

	resp := TrendResponse{SessionID: in.SessionID}
	err := s.sessions.WithSession(ctx, in.SessionID, func(ctx context.Context, tr *conversation.Tracker) error {
		resp.Trend = tr.TrendReport()
		return nil
	})
	if err != nil {
		return TrendResponse{}, err
	}
	return resp, nil
}

func (s *Server) handleEnd(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EndResponse, error) {
	var in SessionArgs
	if err := decodeArgs(args, &in); err != nil {
		return EndResponse{}, err
	}
	if err := s.sessions.Delete(ctx, in.SessionID); err != nil {
		return EndResponse{}, err
	}
	return EndResponse{SessionID: in.SessionID, Ended: true}, nil
}
