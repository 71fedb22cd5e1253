package service

import (
	"strings"

	"github.com/nutriware/nutrirag/internal/domain"
)

// ChunkConfig controls how document text is split for embedding.
type ChunkConfig struct {
	// Size is the maximum chunk length in runes. Only the final chunk of
	// a document may be shorter.
	Size int
	// Overlap is the exact number of runes adjacent chunks share, so no
	// semantic boundary is silently lost at a cut.
	Overlap int
}

// DefaultChunkConfig provides the corpus defaults.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Size:    500,
		Overlap: 50,
	}
}

// chunkSeparators is the priority-ordered list of cut points: paragraph
// break, line break, sentence break, word break. A window with none of
// these is cut at the size limit.
var chunkSeparators = []string{"\n\n", "\n", ". ", " "}

// splitText splits text into segments of at most cfg.Size runes. Each cut
// backs off to the highest-priority separator found late in the window,
// and the next segment starts exactly cfg.Overlap runes before the cut,
// so concatenating segments with the overlap removed reconstructs the
// input exactly.
func splitText(text string, cfg ChunkConfig) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if cfg.Size <= 0 {
		cfg = DefaultChunkConfig()
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.Size {
		cfg.Overlap = DefaultChunkConfig().Overlap
	}

	runes := []rune(text)
	if len(runes) <= cfg.Size {
		return []string{text}
	}

	// A cut earlier than this would stall the scan or produce slivers.
	minCut := cfg.Size / 2
	if minCut <= cfg.Overlap {
		minCut = cfg.Overlap + 1
	}

	segments := make([]string, 0, len(runes)/cfg.Size+1)
	start := 0
	for start < len(runes) {
		end := start + cfg.Size
		if end >= len(runes) {
			segments = append(segments, string(runes[start:]))
			break
		}

		end = findCut(runes, start, end, start+minCut)
		segments = append(segments, string(runes[start:end]))
		start = end - cfg.Overlap
	}

	return segments
}

// findCut returns the cut position inside (floor, end] sitting just after
// the highest-priority separator, or end when the window has none.
func findCut(runes []rune, start, end, floor int) int {
	for _, sep := range chunkSeparators {
		sepRunes := []rune(sep)
		if cut := lastSeparatorEnd(runes, start, end, sepRunes); cut > floor {
			return cut
		}
	}
	return end
}

// lastSeparatorEnd finds the position just after the last occurrence of
// sep fully contained in runes[start:end], or -1.
func lastSeparatorEnd(runes []rune, start, end int, sep []rune) int {
	for i := end - len(sep); i >= start; i-- {
		match := true
		for j := range sep {
			if runes[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i + len(sep)
		}
	}
	return -1
}

// ChunkDocument splits extracted document text into chunks and attaches
// provenance and category metadata. chunk_index is assigned sequentially
// from 0 in source order. Empty input yields an empty sequence.
func ChunkDocument(text, source string, cfg ChunkConfig) []domain.Chunk {
	segments := splitText(text, cfg)
	if len(segments) == 0 {
		return nil
	}

	category := domain.CategoryForSource(source)
	chunks := make([]domain.Chunk, 0, len(segments))
	for i, segment := range segments {
		chunks = append(chunks, domain.Chunk{
			Source:     source,
			ChunkIndex: i,
			Content:    segment,
			Metadata: domain.ChunkMetadata{
				Category: category,
				Theme:    domain.DefaultTheme,
			},
		})
	}

	return chunks
}
