package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrChatUnavailable indicates the chat model service is not configured.
	ErrChatUnavailable = errors.New("chat service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrDatabaseUnavailable indicates the read-only database is not configured.
	ErrDatabaseUnavailable = errors.New("database unavailable")

	// ErrUnsupportedDocument indicates no extractor exists for a document type.
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
