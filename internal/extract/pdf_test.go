package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nutriware/nutrirag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_MissingFile(t *testing.T) {
	extractor := NewPDFExtractor()

	_, err := extractor.Extract(filepath.Join(t.TempDir(), "missing.pdf"))

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeExtractionFailed, domainErr.Code)
}

func TestExtract_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	extractor := NewPDFExtractor()

	_, err := extractor.Extract(path)

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeExtractionFailed, domainErr.Code)
}
