package main

import (
	"fmt"
	"os"

	"github.com/aretw0/moodbot/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moodbot",
	Short: "moodbot is a sentiment-aware chatbot",
	Long: `moodbot scores each message against a lexicon of positive and negative words,
replies in kind and keeps track of how the conversation is going.

Run without a subcommand to start an interactive chat.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("vocab", "", "Vocabulary file (YAML or JSON); defaults to $MOODBOT_VOCAB or ./moodbot.yaml")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for reproducible replies; defaults to $MOODBOT_SEED")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")

	addChatFlags(rootCmd)
}

// commonOptions reads the persistent flags. Flags that were not set defer to the environment.
func commonOptions(cmd *cobra.Command) cli.Common {
	vocab, _ := cmd.Flags().GetString("vocab")
	debug, _ := cmd.Flags().GetBool("debug")

	c := cli.Common{VocabPath: vocab, Debug: debug}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		c.Seed = &seed
	}
	return c
}
