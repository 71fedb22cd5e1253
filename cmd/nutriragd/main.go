package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nutriware/nutrirag/internal/cli"
	"github.com/nutriware/nutrirag/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nutriragd",
		Short: "Nutrirag daemon and CLI",
		Long:  "Nutrirag daemon for running the API server and managing the corpus index",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.IndexCmd())
	rootCmd.AddCommand(admin.AskCmd())
	rootCmd.AddCommand(admin.ChatCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
