// Package plaintext extracts text from plain-text documents.
// A text file has no page structure, so the whole file becomes page 1.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extractor reads plain-text and markdown files.
type Extractor struct{}

// New creates a plaintext extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md"}
}

// Extract reads the file as a single page. Whitespace-only files yield
// no pages.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return []domain.Page{{
		Filename: filepath.Base(path),
		Number:   1,
		Text:     text,
	}}, nil
}
