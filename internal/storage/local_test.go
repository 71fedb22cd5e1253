package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCorpus_ListsOnlyPDFsInOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_dieta.pdf", "a_diabetes.PDF", "notes.txt", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755))

	corpus := NewLocalCorpus(dir)

	docs, err := corpus.ListDocuments(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a_diabetes.PDF", docs[0].Name)
	assert.Equal(t, "b_dieta.pdf", docs[1].Name)
	assert.Equal(t, filepath.Join(dir, "b_dieta.pdf"), docs[1].Path)
}

func TestLocalCorpus_EmptyDirectory(t *testing.T) {
	corpus := NewLocalCorpus(t.TempDir())

	docs, err := corpus.ListDocuments(context.Background())

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLocalCorpus_MissingDirectory(t *testing.T) {
	corpus := NewLocalCorpus(filepath.Join(t.TempDir(), "missing"))

	_, err := corpus.ListDocuments(context.Background())

	assert.Error(t, err)
}
