// Package admin implements the nutriragd daemon commands.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/nutriware/nutrirag/internal/config"
	"github.com/nutriware/nutrirag/internal/openai"
	"github.com/nutriware/nutrirag/internal/repository"
	"github.com/nutriware/nutrirag/internal/service"
	"github.com/nutriware/nutrirag/internal/telemetry"
)

func connectPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("connected to database")

	return pool, nil
}

func newOpenAIClient(cfg *config.Config) (*openai.Client, error) {
	if !cfg.HasOpenAI() {
		return nil, fmt.Errorf("NUTRIRAG_OPENAI_API_KEY is required")
	}

	return openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      goopenai.EmbeddingModel(cfg.EmbeddingModel),
		EmbeddingDimensions: cfg.EmbeddingDimensions,
		ChatModel:           cfg.LLMModel,
	}), nil
}

// newQueryService wires the query-time pipeline: embedder, retriever and
// answerer over the shared connection pool.
func newQueryService(cfg *config.Config, pool *pgxpool.Pool) (*service.QueryService, error) {
	client, err := newOpenAIClient(cfg)
	if err != nil {
		return nil, err
	}

	docRepo := repository.NewDocumentRepository(pool)
	embeddingSvc := service.NewEmbeddingService(client)
	retrievalSvc := service.NewRetrievalService(docRepo, service.RetrievalConfig{
		MatchCount:     cfg.MatchCount,
		MatchThreshold: cfg.MatchThreshold,
		MinSimilarity:  cfg.MinSimilarity,
	})
	answerSvc := service.NewAnswerService(client)

	return service.NewQueryService(embeddingSvc, retrievalSvc, answerSvc), nil
}

func initTelemetry(cfg *config.Config) func() {
	shutdown, err := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Debug:            cfg.Debug,
	})
	if err != nil {
		log.Printf("telemetry init failed (continuing without tracing): %v", err)
		return func() {}
	}
	return shutdown
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
