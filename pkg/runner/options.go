package runner

import "log/slog"

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithNamePrompt asks for the user's name before the first turn
// when the conversation does not have one yet.
func WithNamePrompt(ask bool) Option {
	return func(r *Runner) {
		r.AskName = ask
	}
}
