package admin

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/nutriware/nutrirag/internal/config"
	"github.com/nutriware/nutrirag/internal/extract"
	"github.com/nutriware/nutrirag/internal/repository"
	"github.com/nutriware/nutrirag/internal/service"
	"github.com/nutriware/nutrirag/internal/storage"
	"github.com/nutriware/nutrirag/internal/telemetry"
)

// IndexCmd returns the index command
func IndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the corpus index",
		Long: `Extract, chunk and embed every PDF in the corpus, then replace the
stored index with the result. The previous index is deleted before the
new chunks are written.`,
		RunE: runIndex,
	}

	cmd.Flags().String("docs-dir", "", "Directory of corpus PDFs (overrides NUTRIRAG_DOCS_DIR)")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	shutdownTelemetry := initTelemetry(cfg)
	defer shutdownTelemetry()

	if docsDir, _ := cmd.Flags().GetString("docs-dir"); docsDir != "" {
		cfg.DocsDir = docsDir
	}

	pool, err := connectPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var source service.CorpusSource
	if cfg.HasS3() {
		s3Corpus, err := storage.NewS3Corpus(ctx, storage.S3CorpusConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 corpus: %w", err)
		}
		defer s3Corpus.Close()
		log.Printf("indexing from s3 bucket %q", cfg.S3Bucket)
		source = s3Corpus
	} else {
		log.Printf("indexing from local directory %q", cfg.DocsDir)
		source = storage.NewLocalCorpus(cfg.DocsDir)
	}

	client, err := newOpenAIClient(cfg)
	if err != nil {
		return err
	}

	ingestSvc := service.NewIngestService(
		source,
		extract.NewPDFExtractor(),
		service.NewEmbeddingService(client),
		repository.NewDocumentRepository(pool),
		service.IngestConfig{
			Chunking:  service.ChunkConfig{Size: cfg.ChunkSize, Overlap: cfg.ChunkOverlap},
			BatchSize: cfg.BatchSize,
		},
	)

	spanCtx, span := telemetry.StartTransaction(ctx, "reindex", "pipeline.ingest")
	report, err := ingestSvc.Reindex(spanCtx)
	if err != nil {
		span.SetError(err)
		span.End()
		if report != nil {
			log.Printf("reindex halted: %d/%d chunks inserted", report.ChunksInserted, report.ChunksTotal)
		}
		return err
	}
	span.End()

	printIngestReport(os.Stdout, report)
	return nil
}

func printIngestReport(w io.Writer, report *service.IngestReport) {
	fmt.Fprintf(w, "Indexed %d document(s), %d skipped\n", report.Documents, len(report.Skipped))
	for _, name := range report.Skipped {
		fmt.Fprintf(w, "  skipped: %s\n", name)
	}
	fmt.Fprintf(w, "Inserted %d/%d chunk(s)\n", report.ChunksInserted, report.ChunksTotal)
}
