package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/moodbot"
	"github.com/aretw0/moodbot/internal/presentation/tui"
	"github.com/aretw0/moodbot/pkg/runner"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ChatOptions configures the interactive chat.
type ChatOptions struct {
	Common

	Name string
	JSON bool

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Interactive overrides terminal detection. Nil means detect from In.
	Interactive *bool
}

// RunChat runs one conversation until the user quits, input ends or a signal arrives.
func RunChat(ctx context.Context, opts ChatOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	settings, err := opts.env()
	if err != nil {
		return err
	}
	logger := createLogger(opts.Err, settings, true)

	bot, err := loadBot(opts.Common, settings, logger, createDebugHooks(logger))
	if err != nil {
		return fmt.Errorf("error initializing moodbot: %w", err)
	}

	tracker, err := bot.NewConversation(opts.Name)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	interactive := isTerminal(opts.In)
	if opts.Interactive != nil {
		interactive = *opts.Interactive
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out,
			runner.WithJSONHandlerMaxInput(settings.MaxInputSize),
		)
	} else {
		handlerOpts := []runner.TextHandlerOption{
			runner.WithTextHandlerMaxInput(settings.MaxInputSize),
		}
		if interactive {
			profile := termenv.NewOutput(opts.Out).EnvColorProfile()
			tui.PrintBanner(opts.Out, profile, moodbot.Version)
			render := tui.NewRenderer(terminalWidth(opts.Out))
			if help, err := render(tui.Help); err == nil {
				fmt.Fprint(opts.Out, help)
			}
			handlerOpts = append(handlerOpts,
				runner.WithTextHandlerStyler(tui.NewLabelStyler(profile)),
			)
		}
		text := runner.NewTextHandler(opts.In, opts.Out, handlerOpts...)
		defer text.Close()
		handler = text
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithNamePrompt(!opts.JSON),
	)

	runErr := r.Run(sigCtx, tracker)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	if sig := sigCtx.Signal(); sig != nil && !opts.JSON {
		if sig == os.Interrupt {
			fmt.Fprint(opts.Out, "[CTRL+C]\n")
		}
		fmt.Fprintf(opts.Out, "%s\n", runner.FarewellText)
	}
	logger.Debug("Chat finished", "exchanges", tracker.Len(), "err", runErr)

	return handleExecutionError(runErr)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
