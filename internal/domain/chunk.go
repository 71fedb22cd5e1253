package domain

import "fmt"

// Chunk is the atomic retrieval unit: a bounded segment of a source
// document together with its provenance metadata and embedding.
type Chunk struct {
	Source     string
	ChunkIndex int
	Content    string
	Metadata   ChunkMetadata
	Embedding  []float32
}

// ChunkMetadata carries the coarse topic labels attached at chunking time.
type ChunkMetadata struct {
	Category Category `json:"category"`
	Theme    string   `json:"theme"`
}

// DefaultTheme is attached to every chunk of the nutrition corpus.
const DefaultTheme = "nutrition"

// ValidateChunk validates a Chunk before it is persisted.
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("chunk cannot be nil")
	}
	if c.Source == "" {
		return fmt.Errorf("chunk Source is required")
	}
	if c.ChunkIndex < 0 {
		return fmt.Errorf("chunk ChunkIndex cannot be negative")
	}
	if c.Content == "" {
		return fmt.Errorf("chunk Content is required")
	}
	return nil
}

// RetrievalMatch is a stored chunk plus the similarity score the matcher
// assigned it for one query. Never persisted.
type RetrievalMatch struct {
	Source     string
	ChunkIndex int
	Content    string
	Similarity float64
}

// SourceCount is the number of stored chunks for one source document.
type SourceCount struct {
	Source string
	Chunks int
}
