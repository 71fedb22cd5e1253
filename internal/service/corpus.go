package service

import (
	"context"

	"github.com/nutriware/nutrirag/internal/domain"
)

// StatsRepository exposes aggregate counts over the stored chunks.
type StatsRepository interface {
	Stats(ctx context.Context) (int, []domain.SourceCount, error)
}

// SourceStat is the chunk count for one ingested document.
type SourceStat struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}

// CorpusStats summarizes the indexed corpus.
type CorpusStats struct {
	TotalChunks int          `json:"total_chunks"`
	Sources     []SourceStat `json:"sources"`
}

// CorpusService reports on the indexed corpus.
type CorpusService struct {
	repo StatsRepository
}

func NewCorpusService(repo StatsRepository) *CorpusService {
	return &CorpusService{repo: repo}
}

func (s *CorpusService) Stats(ctx context.Context) (*CorpusStats, error) {
	total, counts, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to read corpus stats", err)
	}

	stats := &CorpusStats{TotalChunks: total, Sources: make([]SourceStat, 0, len(counts))}
	for _, c := range counts {
		stats.Sources = append(stats.Sources, SourceStat{Source: c.Source, Chunks: c.Chunks})
	}
	return stats, nil
}
