// Package repository persists document chunks and delegates similarity
// search to the match_documents SQL function.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nutriware/nutrirag/internal/domain"
	"github.com/pgvector/pgvector-go"
)

// DocumentRepository handles the documents table. The ingestion path is
// its only writer; the query path only reads, through MatchDocuments.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// MatchDocuments calls the match_documents function with the caller's
// threshold and count. The function ranks stored chunks by similarity to
// the query embedding and returns at most matchCount rows at or above
// matchThreshold, ordered by descending similarity.
func (r *DocumentRepository) MatchDocuments(ctx context.Context, queryEmbedding []float32, matchThreshold float64, matchCount int) ([]domain.RetrievalMatch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT source, chunk_index, content, similarity
		 FROM match_documents($1, $2, $3)`,
		pgvector.NewVector(queryEmbedding), matchThreshold, matchCount,
	)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeRetrievalError,
			"match_documents call failed", err)
	}
	defer rows.Close()

	var matches []domain.RetrievalMatch
	for rows.Next() {
		var m domain.RetrievalMatch
		if err := rows.Scan(&m.Source, &m.ChunkIndex, &m.Content, &m.Similarity); err != nil {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeRetrievalError,
				"failed to scan match row", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeRetrievalError,
			"match_documents rows failed", err)
	}

	return matches, nil
}

// InsertChunks writes one batch of embedded chunks in a single round trip.
func (r *DocumentRepository) InsertChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range chunks {
		c := &chunks[i]
		if err := domain.ValidateChunk(c); err != nil {
			return domain.NewDomainErrorWithCause(domain.ErrCodeValidation,
				fmt.Sprintf("invalid chunk %d of %s", c.ChunkIndex, c.Source), err)
		}

		metadata, err := json.Marshal(c.Metadata)
		if err != nil {
			return domain.NewDomainErrorWithCause(domain.ErrCodeValidation,
				"failed to encode chunk metadata", err)
		}

		batch.Queue(
			`INSERT INTO documents (id, source, chunk_index, content, metadata, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), c.Source, c.ChunkIndex, c.Content, metadata,
			pgvector.NewVector(c.Embedding),
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range chunks {
		if _, err := results.Exec(); err != nil {
			return domain.NewDomainErrorWithCause(domain.ErrCodeInsertBatchFailed,
				"batch insert failed", err)
		}
	}

	return nil
}

// DeleteAll clears the stored chunk set ahead of a full re-index.
func (r *DocumentRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents`)
	return err
}

// Stats returns the total chunk count and per-source counts.
func (r *DocumentRepository) Stats(ctx context.Context) (int, []domain.SourceCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT source, COUNT(*) FROM documents GROUP BY source ORDER BY source`)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	total := 0
	var counts []domain.SourceCount
	for rows.Next() {
		var sc domain.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Chunks); err != nil {
			return 0, nil, err
		}
		total += sc.Chunks
		counts = append(counts, sc)
	}

	return total, counts, rows.Err()
}
