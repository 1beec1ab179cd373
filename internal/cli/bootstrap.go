package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/moodbot"
	"github.com/aretw0/moodbot/internal/config"
	"github.com/aretw0/moodbot/internal/logging"
	"github.com/aretw0/moodbot/pkg/conversation"
)

// Common holds the flags shared by every command. Zero values defer to the
// MOODBOT_* environment.
type Common struct {
	VocabPath string
	Seed      *uint64
	Debug     bool
	EnvFiles  []string
}

// env loads settings and applies flag overrides on top of them.
func (c Common) env() (*config.Settings, error) {
	s, err := config.LoadSettings(c.EnvFiles...)
	if err != nil {
		return nil, err
	}
	if c.Debug {
		s.Debug = true
	}
	return s, nil
}

// createLogger configures the application logger. Logs always go to w (stderr),
// never to the transcript. quiet silences everything below debug mode.
func createLogger(w io.Writer, s *config.Settings, quiet bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if s.Debug {
		return logging.NewWithWriter(w, slog.LevelDebug, logging.Format(s.LogFormat))
	}
	if quiet {
		return logging.NewNop()
	}
	return logging.NewWithWriter(w, logging.ParseLevel(s.LogLevel), logging.Format(s.LogFormat))
}

// loadBot builds the Bot from the vocabulary file and seed.
// A vocabulary path given explicitly (flag or environment) must exist;
// the default moodbot.yaml is optional.
func loadBot(c Common, s *config.Settings, logger *slog.Logger, hooks conversation.Hooks) (*moodbot.Bot, error) {
	path := s.Vocabulary
	if c.VocabPath != "" {
		path = c.VocabPath
	}
	if path != config.DefaultVocabularyPath {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("vocabulary file: %w", err)
		}
	}

	vocab, err := config.LoadVocabulary(path)
	if err != nil {
		return nil, err
	}
	lex, err := vocab.Lexicon()
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	responses, err := vocab.ResponseTable()
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}

	opts := []moodbot.Option{
		moodbot.WithLexicon(lex),
		moodbot.WithResponses(responses),
		moodbot.WithHooks(hooks),
		moodbot.WithLogger(logger),
	}
	switch {
	case c.Seed != nil:
		opts = append(opts, moodbot.WithSeed(*c.Seed))
	case s.Seed != nil:
		opts = append(opts, moodbot.WithSeed(*s.Seed))
	}

	logger.Debug("Loading bot", "vocabulary", path, "custom_lexicon", lex != nil)
	return moodbot.New(opts...)
}

// createDebugHooks logs every exchange and trend at debug level.
func createDebugHooks(logger *slog.Logger) conversation.Hooks {
	return conversation.Hooks{
		OnExchange: func(e *conversation.ExchangeEvent) {
			logger.Debug("Exchange",
				"label", e.Exchange.Sentiment.Label,
				"score", e.Exchange.Sentiment.Score,
				"personalized", e.Personalized,
				"evicted", e.Evicted,
				"history_len", e.HistoryLen,
			)
		},
		OnTrend: func(r conversation.Report) {
			logger.Debug("Trend", "direction", r.Direction, "mean", r.Mean, "samples", r.Samples)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

// handleExecutionError maps interruptions onto a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
