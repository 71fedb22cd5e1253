package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// HealthResponse represents the health API response.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthCmd creates the health command.
func HealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check daemon health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runHealth(cmd, outputJSON)
		},
	}

	return cmd
}

func runHealth(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	var health HealthResponse
	if err := json.Unmarshal(resp.Data, &health); err != nil {
		return fmt.Errorf("failed to parse health response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(health, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Status: %s\n", health.Status)
	return nil
}
