package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriware/nutrirag/internal/domain"
)

type stubStatsRepository struct {
	total  int
	counts []domain.SourceCount
	err    error
}

func (s *stubStatsRepository) Stats(ctx context.Context) (int, []domain.SourceCount, error) {
	return s.total, s.counts, s.err
}

func TestCorpusService_Stats(t *testing.T) {
	repo := &stubStatsRepository{
		total: 7,
		counts: []domain.SourceCount{
			{Source: "diabetes-guide.pdf", Chunks: 4},
			{Source: "meal-plans.pdf", Chunks: 3},
		},
	}
	svc := NewCorpusService(repo)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalChunks)
	require.Len(t, stats.Sources, 2)
	assert.Equal(t, SourceStat{Source: "diabetes-guide.pdf", Chunks: 4}, stats.Sources[0])
}

func TestCorpusService_Stats_Empty(t *testing.T) {
	svc := NewCorpusService(&stubStatsRepository{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalChunks)
	assert.Empty(t, stats.Sources)
}

func TestCorpusService_Stats_RepositoryError(t *testing.T) {
	svc := NewCorpusService(&stubStatsRepository{err: errors.New("connection refused")})

	_, err := svc.Stats(context.Background())
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeInternalError, domainErr.Code)
}
