package admin

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutriware/nutrirag/internal/config"
)

// ChatCmd returns the chat command
func ChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive question loop against the indexed corpus",
		Long:  "Read questions from stdin and answer each one. Type 'exit' or 'quit' to stop.",
		RunE:  runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
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

	fmt.Println("nutrirag chat. Type 'exit' or 'quit' to stop.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		start := time.Now()
		answer, err := querySvc.Ask(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		printAnswer(answer, time.Since(start))
	}

	return scanner.Err()
}
