// Package chunker provides a fixed-size token-window chunking processor.
package chunker

import (
	"fmt"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of tokens per chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping tokens.
const DefaultChunkOverlap = 50

// Processor splits page text into fixed-size overlapping token windows.
// Windows advance by chunkSize-overlap tokens; the final window may be
// shorter than chunkSize and is neither padded nor dropped.
type Processor struct {
	tokenizer driven.Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker over the given tokenizer.
// Overlap must be strictly smaller than the chunk size: an overlap equal
// to or larger than the window would re-emit the same tokens forever.
func New(tokenizer driven.Tokenizer, opts ...Option) (*Processor, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("chunker: %w: tokenizer is required", domain.ErrInvalidInput)
	}

	p := &Processor{
		tokenizer: tokenizer,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("chunker: %w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, p.overlap, p.chunkSize)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured window size in tokens.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured window overlap in tokens.
func (p *Processor) Overlap() int {
	return p.overlap
}

// ChunkPage splits one page into chunks. Chunk ids count from 0 within
// the page, so together with filename and page number they identify the
// chunk stably across re-ingestions.
func (p *Processor) ChunkPage(page domain.Page) []domain.Chunk {
	tokens := p.tokenizer.Encode(page.Text)
	if len(tokens) == 0 {
		return nil
	}

	step := p.chunkSize - p.overlap
	chunks := make([]domain.Chunk, 0, len(tokens)/step+1)

	chunkID := 0
	for start := 0; start < len(tokens); start += step {
		end := start + p.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}

		chunks = append(chunks, domain.Chunk{
			Text: p.tokenizer.Decode(tokens[start:end]),
			Metadata: domain.ChunkMetadata{
				Filename:   page.Filename,
				PageNumber: page.Number,
				ChunkID:    chunkID,
				StartToken: start,
				EndToken:   end,
			},
		})
		chunkID++
	}

	return chunks
}
