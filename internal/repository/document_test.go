//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/nutriware/nutrirag/internal/domain"
	"github.com/nutriware/nutrirag/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const embeddingDim = 1536

// unitVector builds a 1536-dim unit vector whose direction is controlled
// by the first two components, so similarities between test vectors are
// predictable.
func unitVector(x, y float32) []float32 {
	v := make([]float32, embeddingDim)
	v[0] = x
	v[1] = y
	return domain.Normalize(v)
}

func testChunk(source string, index int, content string, embedding []float32) domain.Chunk {
	return domain.Chunk{
		Source:     source,
		ChunkIndex: index,
		Content:    content,
		Metadata: domain.ChunkMetadata{
			Category: domain.CategoryForSource(source),
			Theme:    domain.DefaultTheme,
		},
		Embedding: embedding,
	}
}

func TestDocumentRepository_InsertAndMatch(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewDocumentRepository(pool)

	chunks := []domain.Chunk{
		testChunk("guia_diabetes.pdf", 0, "Insulin regulates blood glucose.", unitVector(1, 0)),
		testChunk("guia_diabetes.pdf", 1, "Fiber slows glucose absorption.", unitVector(0.9, 0.1)),
		testChunk("dieta.pdf", 0, "Vegetables are rich in vitamins.", unitVector(0, 1)),
	}
	require.NoError(t, repo.InsertChunks(ctx, chunks))

	// A query aligned with the first vector must rank that chunk first
	// and exclude the orthogonal one at a 0.5 threshold.
	matches, err := repo.MatchDocuments(ctx, unitVector(1, 0), 0.5, 5)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Insulin regulates blood glucose.", matches[0].Content)
	assert.Greater(t, matches[0].Similarity, matches[1].Similarity)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Similarity, 0.5)
	}
}

func TestDocumentRepository_MatchCountCapsRows(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewDocumentRepository(pool)

	var chunks []domain.Chunk
	for i := 0; i < 8; i++ {
		chunks = append(chunks, testChunk("guia_diabetes.pdf", i, "chunk", unitVector(1, float32(i)*0.01)))
	}
	require.NoError(t, repo.InsertChunks(ctx, chunks))

	matches, err := repo.MatchDocuments(ctx, unitVector(1, 0), 0.5, 3)

	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestDocumentRepository_DeleteAllThenReinsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewDocumentRepository(pool)

	chunks := []domain.Chunk{
		testChunk("guia_diabetes.pdf", 0, "first", unitVector(1, 0)),
		testChunk("guia_diabetes.pdf", 1, "second", unitVector(0.8, 0.2)),
	}

	// Two destructive-replace rounds with identical input leave an
	// identical store.
	for round := 0; round < 2; round++ {
		require.NoError(t, repo.DeleteAll(ctx))
		require.NoError(t, repo.InsertChunks(ctx, chunks))
	}

	total, bySource, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, bySource, 1)
	assert.Equal(t, "guia_diabetes.pdf", bySource[0].Source)
	assert.Equal(t, 2, bySource[0].Chunks)
}

func TestDocumentRepository_InsertRejectsInvalidChunk(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewDocumentRepository(pool)

	err := repo.InsertChunks(ctx, []domain.Chunk{
		{Source: "", ChunkIndex: 0, Content: "x", Embedding: unitVector(1, 0)},
	})

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
}
