package main

import (
	"fmt"
	"os"

	"github.com/aretw0/moodbot/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a vocabulary file for consistency",
	Long: `Loads the vocabulary file (moodbot.yaml by default) and reports words that can
never match, overlapping lists, and reply sections the bot would reject.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ValidateOptions{
			Common: commonOptions(cmd),
			Out:    os.Stdout,
		}
		if len(args) > 0 {
			opts.Path = args[0]
		}
		if err := cli.RunValidate(opts); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
