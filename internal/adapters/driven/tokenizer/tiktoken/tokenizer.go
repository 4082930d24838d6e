// Package tiktoken provides a tokenizer adapter over the tiktoken BPE
// encodings used by OpenAI models.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultEncoding matches the embedding and chat models in use.
const DefaultEncoding = "cl100k_base"

// Tokenizer encodes and decodes text with a tiktoken BPE encoding.
type Tokenizer struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// New creates a tokenizer for the named encoding. An empty name selects
// DefaultEncoding.
func New(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: load encoding %s: %w", encoding, err)
	}

	return &Tokenizer{encoding: encoding, enc: enc}, nil
}

// Encode converts text into token ids.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode converts token ids back into text.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// Encoding returns the encoding name.
func (t *Tokenizer) Encoding() string {
	return t.encoding
}
