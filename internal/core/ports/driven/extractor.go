package driven

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// PageExtractor loads a source document and extracts its text one page
// at a time. Pages containing only whitespace are skipped, so extracted
// page numbers may be sparse.
type PageExtractor interface {
	// Extract returns the non-empty pages of the document at path.
	Extract(ctx context.Context, path string) ([]domain.Page, error)

	// SupportedExtensions lists the file extensions (with dot, lower
	// case) this extractor handles.
	SupportedExtensions() []string
}

// CommandRunner executes an external command and captures its combined
// output. Extractors that shell out (e.g., pdftotext) depend on this
// port so tests can substitute canned output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
