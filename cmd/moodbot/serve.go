package main

import (
	"os"

	"github.com/aretw0/moodbot/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts moodbot as a JSON API over HTTP. Conversations are kept in memory
and addressed by session ID. Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		return cli.RunServe(cmd.Context(), cli.ServeOptions{
			Common: commonOptions(cmd),
			Port:   port,
			Err:    os.Stderr,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on; defaults to $MOODBOT_PORT or 8080")
}
