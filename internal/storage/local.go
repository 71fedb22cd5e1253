// Package storage provides corpus document sources: a local directory
// and S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nutriware/nutrirag/internal/service"
)

// LocalCorpus lists PDF documents from a directory on disk.
type LocalCorpus struct {
	dir string
}

func NewLocalCorpus(dir string) *LocalCorpus {
	return &LocalCorpus{dir: dir}
}

// ListDocuments returns the corpus PDFs in filename order. A missing
// directory is an error; an empty one is an empty corpus.
func (c *LocalCorpus) ListDocuments(ctx context.Context) ([]service.CorpusDocument, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus dir %s: %w", c.dir, err)
	}

	var docs []service.CorpusDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		docs = append(docs, service.CorpusDocument{
			Name: entry.Name(),
			Path: filepath.Join(c.dir, entry.Name()),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
