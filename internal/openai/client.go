package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultEmbeddingDimensions is the dimension of text-embedding-3-small vectors
	DefaultEmbeddingDimensions = 1536
	// DefaultChatModel is the model used for answer generation
	DefaultChatModel = "gpt-4o-mini"
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrWrongDimensions is returned when an embedding has unexpected dimensions
	ErrWrongDimensions = errors.New("embedding has wrong dimensions")
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
)

// EmbeddingAPI defines the interface for embedding generation
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatAPI defines the interface for chat completion
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, model, systemInstruction, prompt string, temperature float32) (string, error)
}

// Client wraps the OpenAI API for embeddings and answer generation
type Client struct {
	embeddings EmbeddingAPI
	chat       ChatAPI
	chatModel  string
	dimensions int
}

// OpenAIAdapter adapts the sashabaranov SDK to the narrow interfaces above
type OpenAIAdapter struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIAdapter(apiKey string, model openai.EmbeddingModel) *OpenAIAdapter {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OpenAIAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// CreateEmbeddings calls the OpenAI API to embed a batch of texts
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// CreateChatCompletion calls the OpenAI chat API with a system instruction
func (a *OpenAIAdapter) CreateChatCompletion(ctx context.Context, model, systemInstruction, prompt string, temperature float32) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

type Config struct {
	APIKey              string
	EmbeddingModel      openai.EmbeddingModel
	EmbeddingDimensions int
	ChatModel           string
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	adapter := NewOpenAIAdapter(cfg.APIKey, cfg.EmbeddingModel)
	return &Client{
		embeddings: adapter,
		chat:       adapter,
		chatModel:  chatModel,
		dimensions: dimensions,
	}
}

// NewClientFromEnv creates a new OpenAI client using OPENAI_API_KEY environment variable
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey), nil
}

// GenerateEmbedding generates an embedding for a single text
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateEmbeddings generates embeddings for a batch of texts. Every
// returned vector has the configured dimension, in input order.
func (c *Client) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyText
	}
	for _, text := range texts {
		if text == "" {
			return nil, ErrEmptyText
		}
	}

	vectors, err := c.embeddings.CreateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	for _, v := range vectors {
		if len(v) != c.dimensions {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrWrongDimensions, c.dimensions, len(v))
		}
	}

	return vectors, nil
}

// GenerateText produces a completion for the given prompt under the given
// system instruction and temperature.
func (c *Client) GenerateText(ctx context.Context, systemInstruction, prompt string, temperature float32) (string, error) {
	if prompt == "" {
		return "", ErrEmptyText
	}

	text, err := c.chat.CreateChatCompletion(ctx, c.chatModel, systemInstruction, prompt, temperature)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	return text, nil
}
