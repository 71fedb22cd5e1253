package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// AskRequest represents the ask API request.
type AskRequest struct {
	Question string `json:"question"`
}

// AskMatch is one retrieved source in the ask API response.
type AskMatch struct {
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}

// AskResponse represents the ask API response.
type AskResponse struct {
	Answer  string     `json:"answer"`
	Mode    string     `json:"mode"`
	Matches []AskMatch `json:"matches"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question",
		Long:  "Sends a question to the nutrirag daemon and prints the answer.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(cmd, strings.Join(args, " "), outputJSON)
		},
	}

	return cmd
}

func modeLabel(mode string) string {
	switch mode {
	case "GROUNDED":
		return "RAG (documents)"
	case "FALLBACK":
		return "FALLBACK (general knowledge)"
	default:
		return mode
	}
}

func runAsk(cmd *cobra.Command, question string, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/ask", AskRequest{Question: question})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var askResp AskResponse
	if err := json.Unmarshal(resp.Data, &askResp); err != nil {
		return fmt.Errorf("failed to parse answer: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(askResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("[%s]\n%s\n", modeLabel(askResp.Mode), askResp.Answer)

	if len(askResp.Matches) > 0 {
		fmt.Println("\nSources:")
		for _, m := range askResp.Matches {
			fmt.Printf("  - %s (chunk %d, similarity %.3f)\n", m.Source, m.ChunkIndex, m.Similarity)
		}
	}

	return nil
}
