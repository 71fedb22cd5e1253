package service

import (
	"strings"
	"testing"

	"github.com/nutriware/nutrirag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconstruct(segments []string, overlap int) string {
	var b strings.Builder
	for i, s := range segments {
		runes := []rune(s)
		if i == 0 {
			b.WriteString(s)
			continue
		}
		b.WriteString(string(runes[overlap:]))
	}
	return b.String()
}

func TestSplitText_Empty(t *testing.T) {
	cfg := DefaultChunkConfig()

	assert.Nil(t, splitText("", cfg))
	assert.Nil(t, splitText("   \n\t ", cfg))
}

func TestSplitText_ShorterThanOneChunk(t *testing.T) {
	text := "Dietary fiber slows the absorption of glucose."

	segments := splitText(text, DefaultChunkConfig())

	require.Len(t, segments, 1)
	assert.Equal(t, text, segments[0])
}

func TestSplitText_UnbrokenTextYieldsThreeChunks(t *testing.T) {
	// 1200 runes with no separators: hard cuts at the size limit.
	text := strings.Repeat("a", 1200)
	cfg := DefaultChunkConfig()

	segments := splitText(text, cfg)

	require.Len(t, segments, 3)
	assert.Len(t, []rune(segments[0]), 500)
	assert.Len(t, []rune(segments[1]), 500)
	assert.LessOrEqual(t, len([]rune(segments[2])), 500)
	assert.Equal(t, text, reconstruct(segments, cfg.Overlap))
}

func TestSplitText_OverlapIsExact(t *testing.T) {
	text := strings.Repeat("palavra ", 400) // ~3200 runes with word breaks
	cfg := DefaultChunkConfig()

	segments := splitText(text, cfg)

	require.Greater(t, len(segments), 1)
	for i := 1; i < len(segments); i++ {
		prev := []rune(segments[i-1])
		cur := []rune(segments[i])
		require.GreaterOrEqual(t, len(prev), cfg.Overlap)
		assert.Equal(t,
			string(prev[len(prev)-cfg.Overlap:]),
			string(cur[:cfg.Overlap]),
			"chunks %d and %d must share exactly the overlap", i-1, i)
	}
	assert.Equal(t, text, reconstruct(segments, cfg.Overlap))
}

func TestSplitText_SizeBound(t *testing.T) {
	text := strings.Repeat("Uma frase curta sobre nutricao. ", 200)
	cfg := DefaultChunkConfig()

	segments := splitText(text, cfg)

	require.NotEmpty(t, segments)
	for i, s := range segments {
		assert.LessOrEqual(t, len([]rune(s)), cfg.Size, "segment %d exceeds chunk size", i)
	}
	assert.Equal(t, text, reconstruct(segments, cfg.Overlap))
}

func TestSplitText_PrefersParagraphBreak(t *testing.T) {
	para := strings.Repeat("b", 400)
	text := para + "\n\n" + strings.Repeat("c", 400)
	cfg := DefaultChunkConfig()

	segments := splitText(text, cfg)

	require.Greater(t, len(segments), 1)
	// The first cut lands just after the paragraph break, not mid-word.
	assert.True(t, strings.HasSuffix(segments[0], "\n\n"))
}

func TestSplitText_PrefersSentenceBreakOverWordBreak(t *testing.T) {
	text := strings.Repeat("word ", 60) + "End of sentence. " + strings.Repeat("word ", 60)
	cfg := DefaultChunkConfig()

	segments := splitText(text, cfg)

	require.Greater(t, len(segments), 1)
	assert.True(t, strings.HasSuffix(segments[0], ". "))
}

func TestChunkDocument_AssignsIndexAndMetadata(t *testing.T) {
	text := strings.Repeat("x", 1200)

	chunks := ChunkDocument(text, "guia_diabetes.pdf", DefaultChunkConfig())

	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, "guia_diabetes.pdf", c.Source)
		assert.Equal(t, domain.CategoryDiabetes, c.Metadata.Category)
		assert.Equal(t, domain.DefaultTheme, c.Metadata.Theme)
		assert.Nil(t, c.Embedding)
	}
}

func TestChunkDocument_EmptyText(t *testing.T) {
	assert.Empty(t, ChunkDocument("", "anything.pdf", DefaultChunkConfig()))
}
