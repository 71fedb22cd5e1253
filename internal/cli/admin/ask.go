package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutriware/nutrirag/internal/config"
	"github.com/nutriware/nutrirag/internal/domain"
)

// AskCmd returns the ask command
func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question against the indexed corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := connectPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	querySvc, err := newQueryService(cfg, pool)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")

	start := time.Now()
	answer, err := querySvc.Ask(ctx, question)
	if err != nil {
		return err
	}

	printAnswer(answer, time.Since(start))
	return nil
}

func modeLabel(mode domain.AnswerMode) string {
	switch mode {
	case domain.AnswerModeGrounded:
		return "RAG (documents)"
	case domain.AnswerModeFallback:
		return "FALLBACK (general knowledge)"
	default:
		return string(mode)
	}
}

func printAnswer(answer *domain.Answer, elapsed time.Duration) {
	fmt.Printf("[%s] (%.1fs)\n%s\n", modeLabel(answer.Mode), elapsed.Seconds(), answer.Text)

	if len(answer.Matches) > 0 {
		fmt.Println("\nSources:")
		for _, m := range answer.Matches {
			fmt.Printf("  - %s (chunk %d, similarity %.3f)\n", m.Source, m.ChunkIndex, m.Similarity)
		}
	}
}
