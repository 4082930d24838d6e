package driven

// Tokenizer provides subword tokenisation with a fixed model-family
// vocabulary. Chunk sizing is token-based because downstream model
// context limits are token-based, not character-based.
type Tokenizer interface {
	// Encode converts text to token ids.
	Encode(text string) []int

	// Decode converts token ids back to text.
	Decode(tokens []int) string

	// Encoding returns the vocabulary name (e.g., "cl100k_base").
	Encoding() string
}
