// Package memory provides an in-memory vector index for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory vector index. Safe for concurrent use.
type Index struct {
	mu         sync.RWMutex
	entries    map[string]driven.IndexEntry
	collection string
}

// NewIndex creates an empty in-memory index.
func NewIndex(collection string) *Index {
	if collection == "" {
		collection = "memory"
	}
	return &Index{
		entries:    make(map[string]driven.IndexEntry),
		collection: collection,
	}
}

// Add upserts entries by id.
func (idx *Index) Add(_ context.Context, entries []driven.IndexEntry) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, entry := range entries {
		idx.entries[entry.ID] = entry
	}
	return nil
}

// Search returns the topK nearest entries by cosine distance, ascending.
func (idx *Index) Search(_ context.Context, embedding []float32, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(idx.entries))
	for _, entry := range idx.entries {
		results = append(results, domain.SearchResult{
			Text:     entry.Text,
			Metadata: entry.Metadata,
			Distance: cosineDistance(embedding, entry.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Stats reports the collection name and stored chunk count.
func (idx *Index) Stats(_ context.Context) (domain.IndexStats, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return domain.IndexStats{Collection: idx.collection, Chunks: len(idx.entries)}, nil
}

// Clear removes every entry.
func (idx *Index) Clear(_ context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = make(map[string]driven.IndexEntry)
	return nil
}

// Close is a no-op for the in-memory index.
func (idx *Index) Close() error {
	return nil
}

// cosineDistance is 1 minus cosine similarity, ranging 0 (identical)
// to 2 (opposite). A zero or mismatched vector yields the maximum 2
// instead of NaN, so a corrupt embedding never outranks a valid one.
func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 2
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
