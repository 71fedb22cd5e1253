package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nutriware/nutrirag/internal/cli"
	"github.com/nutriware/nutrirag/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "nutrirag",
		Short: "Nutrirag CLI - questions answered from your nutrition corpus",
		Long: `Nutrirag CLI provides commands to query a running nutrirag daemon.

Environment variables:
  NUTRIRAG_API_KEY   API key for authentication (optional)
  NUTRIRAG_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-key", "", "API key for authentication (overrides env)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.HealthCmd())
	rootCmd.AddCommand(client.StatsCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
