package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(t.TempDir(), "test_docs")
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func entry(id string, embedding []float32, text string, page int) driven.IndexEntry {
	return driven.IndexEntry{
		ID:        id,
		Embedding: embedding,
		Text:      text,
		Metadata:  domain.ChunkMetadata{Filename: "manual.pdf", PageNumber: page},
	}
}

func TestAddAndSearch_OrdersByCosineDistance(t *testing.T) {
	idx := testIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []driven.IndexEntry{
		entry("a", []float32{1, 0, 0}, "exact match", 1),
		entry("b", []float32{0.9, 0.1, 0}, "close match", 2),
		entry("c", []float32{0, 1, 0}, "orthogonal", 3),
	}))

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "exact match", results[0].Text)
	assert.Equal(t, "close match", results[1].Text)
	assert.Equal(t, "orthogonal", results[2].Text)

	assert.InDelta(t, 0, results[0].Distance, 1e-6)
	assert.InDelta(t, 1, results[2].Distance, 1e-6)
	assert.Equal(t, 1, results[0].Metadata.PageNumber)
}

func TestSearch_TopKCapsResults(t *testing.T) {
	idx := testIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []driven.IndexEntry{
		entry("a", []float32{1, 0, 0}, "a", 1),
		entry("b", []float32{0, 1, 0}, "b", 2),
		entry("c", []float32{0, 0, 1}, "c", 3),
	}))

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx := testIndex(t)

	results, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdd_UpsertsByID(t *testing.T) {
	idx := testIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []driven.IndexEntry{entry("a", []float32{1, 0, 0}, "old text", 1)}))
	require.NoError(t, idx.Add(ctx, []driven.IndexEntry{entry("a", []float32{1, 0, 0}, "new text", 1)}))

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Chunks)

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new text", results[0].Text)
}

func TestStatsAndClear(t *testing.T) {
	idx := testIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []driven.IndexEntry{
		entry("a", []float32{1, 0, 0}, "a", 1),
		entry("b", []float32{0, 1, 0}, "b", 2),
	}))

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test_docs", stats.Collection)
	assert.Equal(t, 2, stats.Chunks)

	require.NoError(t, idx.Clear(ctx))
	stats, err = idx.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Chunks)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := NewIndex(dir, "test_docs")
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, []driven.IndexEntry{entry("a", []float32{1, 0, 0}, "persisted", 1)}))
	require.NoError(t, idx.Close())

	idx, err = NewIndex(dir, "test_docs")
	require.NoError(t, err)
	defer idx.Close()

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "persisted", results[0].Text)
}

func TestFloat32BlobRoundTrip(t *testing.T) {
	original := []float32{0.1, -2.5, 3.14159, 0}

	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

func TestCosineDistance_DegenerateVectors(t *testing.T) {
	assert.Equal(t, float64(2), cosineDistance(nil, nil))
	assert.Equal(t, float64(2), cosineDistance([]float32{1}, []float32{1, 2}))
	assert.Equal(t, float64(2), cosineDistance([]float32{0, 0}, []float32{1, 1}))
}

func TestCosineDistance_ZeroVectorNeverOutranksOpposite(t *testing.T) {
	query := []float32{1, 0}

	opposite := cosineDistance(query, []float32{-1, 0})
	zero := cosineDistance(query, []float32{0, 0})

	assert.InDelta(t, 2, opposite, 1e-9)
	assert.GreaterOrEqual(t, zero, opposite)
}
