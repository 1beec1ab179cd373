package main

import (
	"os"

	"github.com/aretw0/moodbot/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat (default)",
	Long: `Starts a conversation on the terminal.

Commands while chatting:
  trend        show the mood of the last five messages
  quit, exit   leave the chat

With --json, each input line may be a JSON string, a {"text": ...} object or
plain text, and every reply is printed as one JSON object per line.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	jsonMode, _ := cmd.Flags().GetBool("json")

	return cli.RunChat(cmd.Context(), cli.ChatOptions{
		Common: commonOptions(cmd),
		Name:   name,
		JSON:   jsonMode,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	})
}

func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Your name (skips the name prompt)")
	cmd.Flags().Bool("json", false, "Read and write newline-delimited JSON")
}

func init() {
	addChatFlags(chatCmd)
	rootCmd.AddCommand(chatCmd)
}
