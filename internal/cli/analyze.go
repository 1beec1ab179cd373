package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/moodbot"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/runner"
)

// AnalyzeOptions configures one-shot scoring.
type AnalyzeOptions struct {
	Common

	// Args are joined into a single text. When empty, each line of In is scored.
	Args    []string
	Explain bool
	JSON    bool

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// RunAnalyze scores the given text, or each line of input, and prints the results.
func RunAnalyze(ctx context.Context, opts AnalyzeOptions) error {
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

	bot, err := loadBot(opts.Common, settings, logger, conversation.Hooks{})
	if err != nil {
		return fmt.Errorf("error initializing moodbot: %w", err)
	}

	if len(opts.Args) > 0 {
		return printAnalysis(opts, bot, strings.Join(opts.Args, " "), settings.MaxInputSize)
	}

	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return handleExecutionError(err)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := printAnalysis(opts, bot, line, settings.MaxInputSize); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printAnalysis(opts AnalyzeOptions, bot *moodbot.Bot, text string, limit int) error {
	clean, err := runner.SanitizeInputLimit(text, limit)
	if err != nil {
		return fmt.Errorf("input rejected: %w", err)
	}

	b := bot.Explain(clean)
	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		if opts.Explain {
			return enc.Encode(b)
		}
		return enc.Encode(b.Result)
	}

	fmt.Fprintf(opts.Out, "[Sentiment: %s | Score: %.2f]\n", strings.ToUpper(b.Label.String()), b.Score)
	if opts.Explain {
		fmt.Fprintf(opts.Out, "  positive: %s\n", joinHits(b.PositiveHits))
		fmt.Fprintf(opts.Out, "  negative: %s\n", joinHits(b.NegativeHits))
	}
	return nil
}

func joinHits(hits []string) string {
	if len(hits) == 0 {
		return "-"
	}
	return strings.Join(hits, ", ")
}
