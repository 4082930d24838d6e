// Package pdf extracts per-page text from PDF documents.
//
// Extraction shells out to pdftotext (poppler-utils), which must be on
// PATH. Pages arrive separated by form-feed characters, which maps
// directly onto the one-chunk-never-spans-two-pages invariant.
package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor extracts text from PDF files page by page.
type Extractor struct {
	runner driven.CommandRunner
}

// New creates a PDF extractor using pdftotext on PATH.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
// Used by tests to substitute canned pdftotext output.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract runs pdftotext and splits its output into pages on form-feed
// boundaries. Page numbers are 1-indexed by position in the document;
// whitespace-only pages are skipped, so the returned numbering may be
// sparse.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext %s: %w", path, err)
	}

	filename := filepath.Base(path)
	raw := strings.Split(string(out), "\f")

	pages := make([]domain.Page, 0, len(raw))
	for i, text := range raw {
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, domain.Page{
			Filename: filename,
			Number:   i + 1,
			Text:     text,
		})
	}

	return pages, nil
}
