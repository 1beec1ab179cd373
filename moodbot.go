package moodbot

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aretw0/moodbot/internal/logging"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
)

// Bot is the high-level entry point. It owns the shared, immutable pieces
// (lexicon and reply templates) and hands out one Tracker per conversation.
type Bot struct {
	analyzer  *sentiment.Analyzer
	lexicon   *sentiment.Lexicon
	responses conversation.ResponseTable
	hooks     conversation.Hooks
	logger    *slog.Logger

	seeded  bool
	seed    uint64
	created atomic.Uint64
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithLexicon replaces the built-in polarity vocabulary.
func WithLexicon(lex *sentiment.Lexicon) Option {
	return func(b *Bot) {
		b.lexicon = lex
	}
}

// WithResponses replaces the built-in reply templates.
func WithResponses(r conversation.ResponseTable) Option {
	return func(b *Bot) {
		b.responses = r
	}
}

// WithSeed makes reply selection reproducible.
// Conversation n (0-based) is seeded with seed+n.
func WithSeed(seed uint64) Option {
	return func(b *Bot) {
		b.seeded = true
		b.seed = seed
	}
}

// WithHooks registers observability callbacks on every conversation.
func WithHooks(h conversation.Hooks) Option {
	return func(b *Bot) {
		b.hooks = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// New initializes a Bot.
func New(opts ...Option) (*Bot, error) {
	b := &Bot{}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.responses == nil {
		b.responses = conversation.DefaultResponses()
	}
	if err := b.responses.Validate(); err != nil {
		return nil, fmt.Errorf("invalid responses: %w", err)
	}
	b.analyzer = sentiment.NewAnalyzer(b.lexicon)
	b.lexicon = b.analyzer.Lexicon()

	pos, neg := b.lexicon.Size()
	b.logger.Debug("Bot initialized", "positive_words", pos, "negative_words", neg, "seeded", b.seeded)
	return b, nil
}

// Analyze scores text without recording it anywhere.
func (b *Bot) Analyze(text string) sentiment.Result {
	return b.analyzer.Analyze(text)
}

// Explain scores text and lists the lexicon hits.
func (b *Bot) Explain(text string) sentiment.Breakdown {
	return b.analyzer.Explain(text)
}

// NewConversation starts a fresh conversation. A non-blank name is set as the
// user's display name; a blank one leaves the conversation anonymous.
func (b *Bot) NewConversation(name string) (*conversation.Tracker, error) {
	n := b.created.Add(1) - 1

	var rnd conversation.Random
	if b.seeded {
		rnd = conversation.NewRandom(b.seed + n)
	} else {
		rnd = conversation.NewRandom(uint64(time.Now().UnixNano()) + n)
	}

	tracker, err := conversation.NewTracker(
		conversation.WithAnalyzer(b.analyzer),
		conversation.WithResponses(b.responses),
		conversation.WithRandom(rnd),
		conversation.WithHooks(b.hooks),
		conversation.WithLogger(b.logger.With("conversation", n)),
	)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) != "" {
		if err := tracker.SetUserName(name); err != nil {
			return nil, err
		}
	}
	return tracker, nil
}
