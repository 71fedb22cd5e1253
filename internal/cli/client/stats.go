package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// SourceStat is the chunk count for one indexed document.
type SourceStat struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}

// StatsResponse represents the corpus stats API response.
type StatsResponse struct {
	TotalChunks int          `json:"total_chunks"`
	Sources     []SourceStat `json:"sources"`
}

// StatsCmd creates the stats command.
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus index stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runStats(cmd, outputJSON)
		},
	}

	return cmd
}

func runStats(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/corpus/stats")
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	var stats StatsResponse
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		return fmt.Errorf("failed to parse stats response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if stats.TotalChunks == 0 {
		fmt.Println("The index is empty. Run 'nutriragd index' first.")
		return nil
	}

	fmt.Printf("%d chunk(s) across %d document(s):\n", stats.TotalChunks, len(stats.Sources))
	for _, s := range stats.Sources {
		fmt.Printf("  - %s: %d chunk(s)\n", s.Source, s.Chunks)
	}

	return nil
}
