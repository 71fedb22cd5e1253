package service

import (
	"context"
	"strings"

	"github.com/nutriware/nutrirag/internal/domain"
)

// QueryEmbedder embeds query text.
type QueryEmbedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Retriever finds stored chunks relevant to a query vector.
type Retriever interface {
	Retrieve(ctx context.Context, queryEmbedding []float32) []domain.RetrievalMatch
}

// Answerer produces the final answer from a question and optional context.
type Answerer interface {
	Answer(ctx context.Context, question string, matches []domain.RetrievalMatch) *domain.Answer
}

// QueryService runs the query-time pipeline: embed, retrieve, generate.
// Strictly sequential; generation depends on retrieval's output.
type QueryService struct {
	embedder  QueryEmbedder
	retriever Retriever
	answerer  Answerer
}

func NewQueryService(embedder QueryEmbedder, retriever Retriever, answerer Answerer) *QueryService {
	return &QueryService{
		embedder:  embedder,
		retriever: retriever,
		answerer:  answerer,
	}
}

// Ask answers a natural-language question against the corpus. An
// embedding failure is fatal to the request; a retrieval failure is not,
// it just sends the answerer down the fallback path.
func (s *QueryService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	queryEmbedding, err := s.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, err
	}

	matches := s.retriever.Retrieve(ctx, queryEmbedding)

	return s.answerer.Answer(ctx, question, matches), nil
}
