// Package sqlite provides a SQLite-backed vector index. Embeddings are
// stored as little-endian float32 blobs and searched by brute-force
// cosine distance, which is adequate for a single-user documentation
// corpus of a few thousand chunks.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultCollection is the default chunk collection name.
const DefaultCollection = "support_docs"

// Index is a SQLite-backed vector index.
type Index struct {
	db         *sql.DB
	path       string
	collection string
}

// NewIndex creates a vector index at the specified data directory.
// If dataDir is empty, defaults to ~/.supporta/data.
func NewIndex(dataDir, collection string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".supporta", "data")
	}
	if collection == "" {
		collection = DefaultCollection
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chunks.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{
		db:         db,
		path:       dbPath,
		collection: collection,
	}

	if err := idx.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// Path returns the database file path.
func (idx *Index) Path() string {
	return idx.path
}

// Close closes the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Add upserts entries. Entry ids derive from chunk provenance, so
// re-ingesting a document overwrites its chunks in place.
func (idx *Index) Add(ctx context.Context, entries []driven.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (collection, id, text, metadata, embedding)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			text = excluded.text,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		metadataJSON, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, idx.collection, entry.ID, entry.Text,
			string(metadataJSON), float32SliceToBytes(entry.Embedding)); err != nil {
			return fmt.Errorf("saving chunk %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search returns the topK nearest chunks by cosine distance, ascending.
func (idx *Index) Search(ctx context.Context, embedding []float32, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT text, metadata, embedding FROM chunks WHERE collection = ?
	`, idx.collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var text, metadataJSON string
		var blob []byte
		if err := rows.Scan(&text, &metadataJSON, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		var metadata domain.ChunkMetadata
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling metadata: %w", err)
		}

		results = append(results, domain.SearchResult{
			Text:     text,
			Metadata: metadata,
			Distance: cosineDistance(embedding, bytesToFloat32Slice(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
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
func (idx *Index) Stats(ctx context.Context) (domain.IndexStats, error) {
	var count int
	row := idx.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE collection = ?`, idx.collection)
	if err := row.Scan(&count); err != nil {
		return domain.IndexStats{}, fmt.Errorf("counting chunks: %w", err)
	}
	return domain.IndexStats{Collection: idx.collection, Chunks: count}, nil
}

// Clear removes every chunk in the collection.
func (idx *Index) Clear(ctx context.Context) error {
	if _, err := idx.db.ExecContext(ctx,
		`DELETE FROM chunks WHERE collection = ?`, idx.collection); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	return nil
}

func (idx *Index) ensureSchema() error {
	_, err := idx.db.Exec(`
		CREATE TABLE IF NOT EXISTS chunks (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			text TEXT NOT NULL,
			metadata TEXT NOT NULL,
			embedding BLOB NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`)
	if err != nil {
		return fmt.Errorf("creating chunks table: %w", err)
	}
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

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
