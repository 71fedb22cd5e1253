package service

import (
	"context"
	"log"

	"github.com/nutriware/nutrirag/internal/domain"
)

// CorpusDocument is one source file to ingest.
type CorpusDocument struct {
	// Name is the document's provenance name, stored on every chunk.
	Name string
	// Path is a local filesystem path the extractor can read.
	Path string
}

// CorpusSource lists the documents of the corpus.
type CorpusSource interface {
	ListDocuments(ctx context.Context) ([]CorpusDocument, error)
}

// DocumentExtractor turns one document into plain text.
type DocumentExtractor interface {
	Extract(path string) (string, error)
}

// BatchEmbedder embeds a document's chunks in one call.
type BatchEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkStore is the bulk-insert interface of the document store.
type ChunkStore interface {
	// DeleteAll removes every stored chunk; a full re-index is a
	// destructive replace, not a patch.
	DeleteAll(ctx context.Context) error
	// InsertChunks writes one batch of embedded chunks.
	InsertChunks(ctx context.Context, chunks []domain.Chunk) error
}

// IngestConfig controls chunking and insert batching.
type IngestConfig struct {
	Chunking  ChunkConfig
	BatchSize int
}

// DefaultIngestConfig provides the corpus defaults.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		Chunking:  DefaultChunkConfig(),
		BatchSize: 500,
	}
}

// IngestReport summarizes one ingestion run, including partial completion
// when a batch insert halted the run.
type IngestReport struct {
	Documents      int
	Skipped        []string
	ChunksTotal    int
	ChunksInserted int
}

// Complete reports whether every produced chunk was inserted.
func (r *IngestReport) Complete() bool {
	return r.ChunksInserted == r.ChunksTotal
}

// IngestService populates the document store from the corpus: extract,
// chunk, embed, then destructive-replace plus batched insert. Documents
// are processed sequentially; one failed document never fails the run.
type IngestService struct {
	source    CorpusSource
	extractor DocumentExtractor
	embedder  BatchEmbedder
	store     ChunkStore
	cfg       IngestConfig
}

func NewIngestService(source CorpusSource, extractor DocumentExtractor, embedder BatchEmbedder, store ChunkStore, cfg IngestConfig) *IngestService {
	if cfg.BatchSize <= 0 {
		cfg = DefaultIngestConfig()
	}
	return &IngestService{
		source:    source,
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		cfg:       cfg,
	}
}

// Reindex rebuilds the entire stored chunk set from the corpus. An
// embedding failure aborts the run before anything is written; a failed
// insert batch halts the remaining batches and the report carries the
// partial completion counts.
func (s *IngestService) Reindex(ctx context.Context) (*IngestReport, error) {
	docs, err := s.source.ListDocuments(ctx)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError,
			"failed to list corpus documents", err)
	}

	report := &IngestReport{}
	var all []domain.Chunk

	for _, doc := range docs {
		text, err := s.extractor.Extract(doc.Path)
		if err != nil {
			log.Printf("ingest: skipping %s: %v", doc.Name, err)
			report.Skipped = append(report.Skipped, doc.Name)
			continue
		}

		chunks := ChunkDocument(text, doc.Name, s.cfg.Chunking)
		report.Documents++
		if len(chunks) == 0 {
			log.Printf("ingest: %s produced no chunks", doc.Name)
			continue
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}

		// One batched embedding call per document.
		embeddings, err := s.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return report, err
		}
		for i := range chunks {
			chunks[i].Embedding = embeddings[i]
		}

		log.Printf("ingest: %s split into %d chunks", doc.Name, len(chunks))
		all = append(all, chunks...)
	}

	report.ChunksTotal = len(all)
	if len(all) == 0 {
		log.Printf("ingest: no chunks produced, store left untouched")
		return report, nil
	}

	if err := s.store.DeleteAll(ctx); err != nil {
		return report, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError,
			"failed to clear document store", err)
	}

	for start := 0; start < len(all); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(all) {
			end = len(all)
		}

		batch := all[start:end]
		if err := s.store.InsertChunks(ctx, batch); err != nil {
			// Halt the remaining batches; partial completion is in the
			// report.
			log.Printf("ingest: batch %d failed, halting: %v", start/s.cfg.BatchSize+1, err)
			return report, domain.NewDomainErrorWithCause(domain.ErrCodeInsertBatchFailed,
				"failed to insert chunk batch", err)
		}

		report.ChunksInserted += len(batch)
		log.Printf("ingest: batch %d inserted (%d/%d chunks)",
			start/s.cfg.BatchSize+1, report.ChunksInserted, report.ChunksTotal)
	}

	return report, nil
}
