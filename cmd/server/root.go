package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "citypulse-server",
		Short: "Public transit comment collection and sentiment dashboard",
		Long: `CityPulse collects rider comments about public transit, scores each
one with a sentiment lexicon, and serves an admin dashboard with
charts, service alerts, and CSV/Excel export.

Configuration comes from CITYPULSE_* environment variables or a .env
file. Running with no arguments starts the server.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(analyzeCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("citypulse-server %s\n", version)
		},
	})

	return cmd
}
