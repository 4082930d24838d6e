// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ChatService: Tool-calling chat completion
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Chunk storage and nearest-neighbour search
//   - Tokenizer: Subword tokenisation for chunk sizing
//   - PageExtractor: Per-page text extraction from source documents
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - IssueTracker: Support-ticket dispatch. Without credentials the
//     GitHub adapter degrades to simulated responses on its own.
//   - ReadOnlyDatabase: Only the data-chat command requires it.
//   - TranscriptionService, ImageService: Only the voice command requires them.
//   - PromptStore: Services fall back to embedded default prompts.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or postprocessor package
package driven
