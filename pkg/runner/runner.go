package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/moodbot/internal/logging"
	"github.com/aretw0/moodbot/pkg/conversation"
)

// Prompts and fixed messages of the interactive loop.
const (
	NamePrompt   = "What's your name? "
	InputPrompt  = "You: "
	FarewellText = "Thanks for chatting! Have a great day!"
)

// Commands recognized by the loop (case-insensitive).
const (
	CommandQuit  = "quit"
	CommandExit  = "exit"
	CommandTrend = "trend"
)

// Runner drives a conversation turn by turn using an IOHandler.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// AskName prompts for a display name before the loop starts.
	AskName bool
}

// NewRunner creates a Runner configured by opts.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run executes the chat loop until the user quits, input ends, or ctx is cancelled.
// A clean quit or end of input returns nil; cancellation returns ctx.Err().
func (r *Runner) Run(ctx context.Context, tracker *conversation.Tracker) error {
	handler := r.resolveHandler()

	if r.AskName && tracker.UserName() == "" {
		if err := r.greet(ctx, handler, tracker); err != nil {
			return finish(err)
		}
	}

	for {
		input, err := handler.Input(ctx, InputPrompt)
		if err != nil {
			if ctx.Err() != nil {
				r.Logger.Debug("Runner input: Context cancelled", "err", ctx.Err())
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case CommandQuit, CommandExit:
			return handler.SystemOutput(ctx, FarewellText)
		case CommandTrend:
			report := tracker.TrendReport()
			if err := handler.Output(ctx, Turn{Kind: TurnTrend, Trend: &report}); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}

		reply, result := tracker.Respond(input)
		r.Logger.Debug("Turn complete", "label", result.Label, "score", result.Score, "history_len", tracker.Len())

		turn := Turn{Kind: TurnReply, Input: input, Reply: reply, Sentiment: &result}
		if err := handler.Output(ctx, turn); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

// greet runs the one-time name prompt. A blank answer keeps the conversation anonymous.
func (r *Runner) greet(ctx context.Context, handler IOHandler, tracker *conversation.Tracker) error {
	name, err := handler.Input(ctx, NamePrompt)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if err := tracker.SetUserName(name); err != nil {
		return err
	}
	r.Logger.Debug("User name set", "name", tracker.UserName())
	return handler.SystemOutput(ctx, fmt.Sprintf("Nice to meet you, %s! Let's chat.", tracker.UserName()))
}

// finish maps end-of-input during the greeting onto a clean exit.
func finish(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	return r.Handler
}
