package driven

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// IndexEntry is one chunk ready for insertion: a stable id, the chunk's
// embedding, its text, and its provenance.
type IndexEntry struct {
	// ID is the stable chunk key. Inserting an existing id upserts.
	ID string

	// Embedding is the chunk's vector representation.
	Embedding []float32

	// Text is the chunk text, stored alongside the vector so search
	// results need no second lookup.
	Text string

	// Metadata is the chunk's provenance.
	Metadata domain.ChunkMetadata
}

// VectorIndex stores chunk embeddings in a single flat collection and
// supports top-k nearest-neighbour search. There is no per-tenant
// isolation; one collection per deployment.
type VectorIndex interface {
	// Add upserts the given entries into the collection.
	Add(ctx context.Context, entries []IndexEntry) error

	// Search returns the topK stored chunks nearest to the query
	// embedding, in ascending-distance order. An empty collection
	// yields an empty slice, not an error.
	Search(ctx context.Context, query []float32, topK int) ([]domain.SearchResult, error)

	// Stats reports the collection name and stored chunk count.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Clear deletes and recreates the collection under the same name.
	// Destructive; confirmation is a caller concern.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
