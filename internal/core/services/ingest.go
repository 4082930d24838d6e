package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
	"github.com/custodia-labs/supporta-cli/internal/logger"
	"github.com/custodia-labs/supporta-cli/internal/postprocessors/chunker"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IndexBatchSize bounds the entries upserted per index call. Batching
// bounds peak memory and gives partial-progress visibility in verbose
// mode; a failed batch aborts the whole ingestion.
const IndexBatchSize = 100

// IngestService turns source documents into indexed chunks: extract
// pages, chunk each page, embed, and upsert.
type IngestService struct {
	extractors []driven.PageExtractor
	chunker    *chunker.Processor
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
}

// NewIngestService creates an ingest service.
func NewIngestService(
	extractors []driven.PageExtractor,
	processor *chunker.Processor,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
) *IngestService {
	return &IngestService{
		extractors: extractors,
		chunker:    processor,
		embedder:   embedder,
		index:      index,
	}
}

// IngestFile chunks and indexes one document. Chunk ids derive from
// (filename, page, position), so re-ingesting the same file upserts
// instead of duplicating.
func (s *IngestService) IngestFile(ctx context.Context, path string) (driving.IngestReport, error) {
	var report driving.IngestReport

	extractor := s.extractorFor(path)
	if extractor == nil {
		return report, fmt.Errorf("%w: %s", domain.ErrUnsupportedDocument, filepath.Ext(path))
	}

	logger.Section("Ingest " + filepath.Base(path))

	pages, err := extractor.Extract(ctx, path)
	if err != nil {
		return report, fmt.Errorf("extract pages: %w", err)
	}
	logger.Info("Extracted %d non-empty pages", len(pages))

	// Chunking runs per page, so no chunk ever spans a page boundary.
	var chunks []domain.Chunk
	for _, page := range pages {
		chunks = append(chunks, s.chunker.ChunkPage(page)...)
	}
	logger.Info("Produced %d chunks", len(chunks))

	if err := s.indexChunks(ctx, chunks); err != nil {
		return report, err
	}

	report.Documents = 1
	report.Pages = len(pages)
	report.Chunks = len(chunks)
	return report, nil
}

// IngestDirectory ingests every supported document in a directory.
func (s *IngestService) IngestDirectory(ctx context.Context, dir string) (driving.IngestReport, error) {
	var report driving.IngestReport

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if s.extractorFor(path) == nil {
			continue
		}

		fileReport, err := s.IngestFile(ctx, path)
		if err != nil {
			return report, fmt.Errorf("ingest %s: %w", entry.Name(), err)
		}
		report.Documents += fileReport.Documents
		report.Pages += fileReport.Pages
		report.Chunks += fileReport.Chunks
	}

	return report, nil
}

// Stats reports the state of the vector index.
func (s *IngestService) Stats(ctx context.Context) (domain.IndexStats, error) {
	if s.index == nil {
		return domain.IndexStats{}, domain.ErrVectorIndexUnavailable
	}
	return s.index.Stats(ctx)
}

// Clear empties the vector index.
func (s *IngestService) Clear(ctx context.Context) error {
	if s.index == nil {
		return domain.ErrVectorIndexUnavailable
	}
	return s.index.Clear(ctx)
}

// indexChunks embeds and upserts chunks in batches of IndexBatchSize.
// The same embedding service used at search time embeds the chunk text,
// keeping ingestion and query in one embedding space.
func (s *IngestService) indexChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}
	if s.index == nil {
		return domain.ErrVectorIndexUnavailable
	}

	for start := 0; start < len(chunks); start += IndexBatchSize {
		end := start + IndexBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embed batch %d-%d: got %d embeddings for %d texts", start, end, len(embeddings), len(batch))
		}

		entries := make([]driven.IndexEntry, len(batch))
		for i, c := range batch {
			entries[i] = driven.IndexEntry{
				ID:        c.Key(),
				Embedding: embeddings[i],
				Text:      c.Text,
				Metadata:  c.Metadata,
			}
		}

		if err := s.index.Add(ctx, entries); err != nil {
			return fmt.Errorf("index batch %d-%d: %w", start, end, err)
		}
		logger.Info("Indexed %d/%d chunks", end, len(chunks))
	}

	return nil
}

func (s *IngestService) extractorFor(path string) driven.PageExtractor {
	ext := strings.ToLower(filepath.Ext(path))
	for _, extractor := range s.extractors {
		for _, supported := range extractor.SupportedExtensions() {
			if supported == ext {
				return extractor
			}
		}
	}
	return nil
}
