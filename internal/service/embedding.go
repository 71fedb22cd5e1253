package service

import (
	"context"

	"github.com/nutriware/nutrirag/internal/domain"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingService maps text to unit-normalized vectors. The same model
// embeds both indexing-time chunk text and query-time text; that symmetry
// is what makes the similarity comparison meaningful.
type EmbeddingService struct {
	client EmbeddingClient
}

// NewEmbeddingService creates a new EmbeddingService instance
func NewEmbeddingService(client EmbeddingClient) *EmbeddingService {
	return &EmbeddingService{client: client}
}

// EmbedText embeds a single text and L2-normalizes the result. Model
// failure is fatal to the current operation and surfaces as
// domain.ErrEmbeddingUnavailable.
func (s *EmbeddingService) EmbedText(ctx context.Context, text string) ([]float32, error) {
	embedding, err := s.client.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeEmbeddingUnavail,
			"embedding model unavailable", err)
	}
	return domain.Normalize(embedding), nil
}

// EmbedTexts embeds a batch of texts in one call and L2-normalizes each
// vector. Used at index time so a document's chunks go out as a single
// batched request.
func (s *EmbeddingService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := s.client.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeEmbeddingUnavail,
			"embedding model unavailable", err)
	}

	for i := range embeddings {
		embeddings[i] = domain.Normalize(embeddings[i])
	}
	return embeddings, nil
}
