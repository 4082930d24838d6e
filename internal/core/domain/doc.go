// Package domain defines the core business entities for Supporta.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: One page of extracted source text
//   - Chunk: A bounded token window of a page plus provenance metadata
//   - SearchResult: A retrieval hit from the vector index
//   - Message: One turn in a conversation
//   - Reply: The chat-shaped result of a support query
//   - TicketResult: The outcome of a support-ticket submission
//   - QueryResult: The outcome of a read-only database query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
