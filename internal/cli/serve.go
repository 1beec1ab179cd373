package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/moodbot"
	"github.com/aretw0/moodbot/internal/config"
	"github.com/aretw0/moodbot/internal/metrics"
	httpAdapter "github.com/aretw0/moodbot/pkg/adapters/http"
	"github.com/aretw0/moodbot/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServeOptions configures the HTTP API server.
type ServeOptions struct {
	Common

	// Port overrides MOODBOT_PORT.
	Port string
	Err  io.Writer
}

// services is the shared wiring behind the network adapters.
type services struct {
	bot      *moodbot.Bot
	sessions *session.Manager
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	maxInput int
	logger   *slog.Logger
}

// newServices builds the Bot, the session manager and a private metrics registry.
func newServices(c Common, s *config.Settings, logger *slog.Logger) (*services, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	hooks := m.ConversationHooks(createDebugHooks(logger))
	bot, err := loadBot(c, s, logger, hooks)
	if err != nil {
		return nil, fmt.Errorf("error initializing moodbot: %w", err)
	}

	sessions := session.NewManager(bot.NewConversation,
		session.WithLogger(logger),
		session.WithHooks(m.SessionHooks()),
	)

	return &services{bot: bot, sessions: sessions, metrics: m, registry: reg, maxInput: s.MaxInputSize, logger: logger}, nil
}

// newServeHandler builds the HTTP handler with metrics wired in.
func newServeHandler(svc *services) http.Handler {
	return httpAdapter.NewHandler(svc.bot, svc.sessions,
		httpAdapter.WithLogger(svc.logger),
		httpAdapter.WithVersion(moodbot.Version),
		httpAdapter.WithAnalyzeObserver(svc.metrics.ObserveAnalysis),
		httpAdapter.WithMaxInputSize(svc.maxInput),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(svc.registry, promhttp.HandlerOpts{})),
	)
}

// RunServe serves the HTTP API until a signal arrives.
func RunServe(ctx context.Context, opts ServeOptions) error {
	settings, err := opts.env()
	if err != nil {
		return err
	}
	if opts.Port != "" {
		settings.Port = opts.Port
	}
	logger := createLogger(opts.Err, settings, false)

	svc, err := newServices(opts.Common, settings, logger)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	return httpAdapter.ListenAndServe(sigCtx, ":"+settings.Port, newServeHandler(svc), logger)
}
