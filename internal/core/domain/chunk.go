package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Page is one page of text extracted from a source document.
// Chunking never crosses a page boundary, so every chunk resolves
// to exactly one page number.
type Page struct {
	// Filename is the base name of the source document.
	Filename string

	// Number is the 1-indexed page number within the document.
	Number int

	// Text is the extracted page text.
	Text string
}

// ChunkMetadata carries the provenance of a chunk.
type ChunkMetadata struct {
	// Filename is the base name of the source document.
	Filename string `json:"filename"`

	// PageNumber is the 1-indexed page the chunk was cut from.
	PageNumber int `json:"page_number"`

	// ChunkID is the ordinal position of the chunk within its page,
	// counting from 0.
	ChunkID int `json:"chunk_id"`

	// StartToken is the token offset where the chunk's window begins.
	StartToken int `json:"start_token"`

	// EndToken is the token offset where the chunk's window ends.
	EndToken int `json:"end_token"`
}

// Chunk is a bounded token window of source text plus provenance metadata.
// Chunks are immutable once created; after ingestion the vector index
// owns them.
type Chunk struct {
	// Text is the decoded text of the token window.
	Text string

	// Metadata is the chunk's provenance.
	Metadata ChunkMetadata
}

// Key derives a stable identifier from the chunk's provenance.
// Re-ingesting the same document yields the same keys, so ingestion
// is an upsert rather than a collision.
func (c Chunk) Key() string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%d",
		c.Metadata.Filename, c.Metadata.PageNumber, c.Metadata.ChunkID))
	return "chunk_" + hex.EncodeToString(sum[:16])
}

// SearchResult is a read-only projection of a vector index hit.
type SearchResult struct {
	// Text is the stored chunk text.
	Text string

	// Metadata is the stored chunk provenance.
	Metadata ChunkMetadata

	// Distance is the index's native distance metric value.
	// Lower means more similar; no normalisation is applied.
	Distance float64
}

// IndexStats describes the state of a vector index collection.
type IndexStats struct {
	// Collection is the collection name.
	Collection string

	// Chunks is the number of stored chunks.
	Chunks int
}
