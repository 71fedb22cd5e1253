package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OpenAIAPIKey        string `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel      string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	EmbeddingDimensions int    `envconfig:"EMBEDDING_DIMENSIONS" default:"1536"`
	LLMModel            string `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`

	// Corpus location: a local directory by default, or an S3 bucket
	// when the S3 settings are present.
	DocsDir     string `envconfig:"DOCS_DIR" default:"docs"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"nutrirag-corpus"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Prefix    string `envconfig:"S3_PREFIX"`

	// Retrieval tuning. MatchThreshold is the broad service-side recall
	// gate; MinSimilarity is the strict client-side precision gate.
	MatchCount     int     `envconfig:"MATCH_COUNT" default:"5"`
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.5"`
	MinSimilarity  float64 `envconfig:"MIN_SIMILARITY" default:"0.75"`

	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"500"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"50"`
	BatchSize    int `envconfig:"BATCH_SIZE" default:"500"`

	// APIKey protects the HTTP API when set; empty disables auth.
	APIKey string `envconfig:"API_KEY"`

	SentryDSN        string  `envconfig:"SENTRY_DSN"`
	Environment      string  `envconfig:"ENVIRONMENT" default:"development"`
	TracesSampleRate float64 `envconfig:"TRACES_SAMPLE_RATE" default:"1.0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("NUTRIRAG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
