package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/moodbot/internal/config"
	"github.com/aretw0/moodbot/internal/validator"
)

// ValidateOptions configures a vocabulary check.
type ValidateOptions struct {
	Common

	// Path overrides Common.VocabPath and the environment.
	Path string
	Out  io.Writer
}

// RunValidate loads a vocabulary file and prints its warnings.
// It fails when the file is missing, unparsable, or would be rejected at startup.
func RunValidate(opts ValidateOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	path := opts.Path
	if path == "" {
		settings, err := opts.env()
		if err != nil {
			return err
		}
		path = settings.Vocabulary
		if opts.VocabPath != "" {
			path = opts.VocabPath
		}
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("vocabulary file: %w", err)
	}
	vocab, err := config.LoadVocabulary(path)
	if err != nil {
		return err
	}

	report := validator.ValidateVocabulary(vocab)
	for _, w := range report.Warnings {
		fmt.Fprintf(opts.Out, "warning: %s\n", w)
	}
	if err := report.Err(); err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "Vocabulary %s is valid! ✅\n", path)
	return nil
}
