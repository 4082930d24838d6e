package driving

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// Documents is the number of source documents processed.
	Documents int

	// Pages is the number of non-empty pages extracted.
	Pages int

	// Chunks is the number of chunks indexed.
	Chunks int
}

// IngestService processes source documents into the vector index.
type IngestService interface {
	// IngestFile chunks and indexes one document.
	IngestFile(ctx context.Context, path string) (IngestReport, error)

	// IngestDirectory ingests every supported document in a directory.
	IngestDirectory(ctx context.Context, dir string) (IngestReport, error)

	// Stats reports the state of the vector index.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Clear empties the vector index.
	Clear(ctx context.Context) error
}
