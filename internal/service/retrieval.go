package service

import (
	"context"
	"log"
	"sort"

	"github.com/nutriware/nutrirag/internal/domain"
)

// MatchRepository delegates nearest-neighbor search to the remote
// similarity-search function.
type MatchRepository interface {
	MatchDocuments(ctx context.Context, queryEmbedding []float32, matchThreshold float64, matchCount int) ([]domain.RetrievalMatch, error)
}

// RetrievalConfig holds the two-tier similarity gate. The broad
// service-side threshold maximizes recall for ranking; the stricter
// client-side cut controls precision before content reaches the LLM.
// Keep both gates distinct.
type RetrievalConfig struct {
	// MatchCount is the maximum number of candidates requested from the
	// matcher and the hard cap on returned matches.
	MatchCount int
	// MatchThreshold is the service-side similarity floor.
	MatchThreshold float64
	// MinSimilarity is the client-side post-filter; only candidates
	// strictly above it are allowed to ground an answer.
	MinSimilarity float64
}

// DefaultRetrievalConfig returns the tuned corpus thresholds.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		MatchCount:     5,
		MatchThreshold: 0.5,
		MinSimilarity:  0.75,
	}
}

// RetrievalService returns the stored chunks most similar to a query
// vector.
type RetrievalService struct {
	repo MatchRepository
	cfg  RetrievalConfig
}

func NewRetrievalService(repo MatchRepository, cfg RetrievalConfig) *RetrievalService {
	if cfg.MatchCount <= 0 {
		cfg = DefaultRetrievalConfig()
	}
	return &RetrievalService{repo: repo, cfg: cfg}
}

// Retrieve returns at most MatchCount matches strictly above the
// client-side similarity cut, ordered by descending similarity. A matcher
// failure is not an error: it degrades to "no relevant context found" and
// the answerer's fallback path takes over.
func (s *RetrievalService) Retrieve(ctx context.Context, queryEmbedding []float32) []domain.RetrievalMatch {
	rows, err := s.repo.MatchDocuments(ctx, queryEmbedding, s.cfg.MatchThreshold, s.cfg.MatchCount)
	if err != nil {
		log.Printf("retrieval: similarity search failed, falling back to no matches: %v", err)
		return nil
	}

	matches := make([]domain.RetrievalMatch, 0, len(rows))
	for _, row := range rows {
		if row.Similarity > s.cfg.MinSimilarity {
			matches = append(matches, row)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > s.cfg.MatchCount {
		matches = matches[:s.cfg.MatchCount]
	}

	return matches
}
