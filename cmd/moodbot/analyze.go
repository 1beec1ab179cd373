package main

import (
	"os"

	"github.com/aretw0/moodbot/internal/cli"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Score the sentiment of a text",
	Long: `Scores the given text. Without arguments, every non-blank line of standard
input is scored on its own.`,
	Example: `  moodbot analyze "I am happy and excited"
  cat reviews.txt | moodbot analyze --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		explain, _ := cmd.Flags().GetBool("explain")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.RunAnalyze(cmd.Context(), cli.AnalyzeOptions{
			Common:  commonOptions(cmd),
			Args:    args,
			Explain: explain,
			JSON:    jsonMode,
			In:      os.Stdin,
			Out:     os.Stdout,
			Err:     os.Stderr,
		})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("explain", false, "List the matched positive and negative words")
	analyzeCmd.Flags().Bool("json", false, "Print one JSON object per result")
}
