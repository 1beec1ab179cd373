package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/moodbot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of moodbot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "moodbot version %s\n", strings.TrimSpace(moodbot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
