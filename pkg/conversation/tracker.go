package conversation

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/moodbot/internal/logging"
	"github.com/aretw0/moodbot/pkg/sentiment"
)

// PersonalizeProbability is the chance that a reply is prefixed with the user name.
const PersonalizeProbability = 0.3

var (
	// ErrEmptyName is returned when the user name is blank after trimming.
	ErrEmptyName = errors.New("user name is empty")
	// ErrNameAlreadySet is returned when the user name is assigned twice.
	ErrNameAlreadySet = errors.New("user name already set")
)

// Tracker holds the state of one conversation.
type Tracker struct {
	analyzer  *sentiment.Analyzer
	history   *History
	responses ResponseTable
	rnd       Random
	hooks     Hooks
	logger    *slog.Logger
	now       func() time.Time

	userName string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithAnalyzer sets the scorer. Defaults to the built-in lexicon.
func WithAnalyzer(a *sentiment.Analyzer) Option {
	return func(t *Tracker) {
		t.analyzer = a
	}
}

// WithResponses replaces the reply templates.
func WithResponses(r ResponseTable) Option {
	return func(t *Tracker) {
		t.responses = r
	}
}

// WithRandom injects the random source used for reply selection.
func WithRandom(r Random) Option {
	return func(t *Tracker) {
		t.rnd = r
	}
}

// WithHooks registers observability callbacks.
func WithHooks(h Hooks) Option {
	return func(t *Tracker) {
		t.hooks = h
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// NewTracker creates a Tracker with an empty history.
func NewTracker(opts ...Option) (*Tracker, error) {
	t := &Tracker{
		history: NewHistory(HistorySize),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.analyzer == nil {
		t.analyzer = sentiment.NewAnalyzer(nil)
	}
	if t.responses == nil {
		t.responses = DefaultResponses()
	}
	if err := t.responses.Validate(); err != nil {
		return nil, err
	}
	t.responses = t.responses.clone()
	if t.rnd == nil {
		t.rnd = NewRandom(uint64(time.Now().UnixNano()))
	}
	if t.logger == nil {
		t.logger = logging.NewNop()
	}
	return t, nil
}

// SetUserName assigns the display name used to decorate replies.
// It can be called once per tracker.
func (t *Tracker) SetUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if t.userName != "" {
		return fmt.Errorf("%w: %q", ErrNameAlreadySet, t.userName)
	}
	t.userName = name
	return nil
}

// UserName returns the display name, or "" if none was set.
func (t *Tracker) UserName() string {
	return t.userName
}

// Analyze scores text without touching the history.
func (t *Tracker) Analyze(text string) sentiment.Result {
	return t.analyzer.Analyze(text)
}

// Respond scores input, records it and returns a templated reply.
func (t *Tracker) Respond(input string) (string, sentiment.Result) {
	result := t.analyzer.Analyze(input)
	ex := Exchange{Input: input, Sentiment: result}
	evicted := t.history.Push(ex)

	templates := t.responses[result.Label]
	reply := templates[t.rnd.IntN(len(templates))]

	personalized := false
	if t.userName != "" && t.rnd.Float64() < PersonalizeProbability {
		reply = t.userName + ", " + strings.ToLower(reply)
		personalized = true
	}

	t.logger.Debug("Exchange recorded",
		"label", result.Label,
		"score", result.Score,
		"history_len", t.history.Len(),
		"evicted", evicted,
	)

	if t.hooks.OnExchange != nil {
		t.hooks.OnExchange(&ExchangeEvent{
			Timestamp:    t.now(),
			Exchange:     ex,
			Reply:        reply,
			Personalized: personalized,
			Evicted:      evicted,
			HistoryLen:   t.history.Len(),
		})
	}

	return reply, result
}

// Trend summarizes the sentiment of the stored exchanges.
func (t *Tracker) Trend() string {
	return t.TrendReport().Summary
}

// TrendReport is the structured form of Trend.
func (t *Tracker) TrendReport() Report {
	r := summarize(t.history.Scores())
	if t.hooks.OnTrend != nil {
		t.hooks.OnTrend(r)
	}
	return r
}

// Exchanges returns the stored exchanges, oldest first.
func (t *Tracker) Exchanges() []Exchange {
	return t.history.Items()
}

// Len returns the number of stored exchanges.
func (t *Tracker) Len() int {
	return t.history.Len()
}
