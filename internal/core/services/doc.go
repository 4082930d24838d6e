// Package services implements the core application logic.
//
// Services orchestrate the driven ports (chat model, embeddings, vector
// index, issue tracker, database) into the driving operations the CLI
// exposes:
//
//   - SupportService: retrieval-augmented support chat with ticket escalation
//   - DataChatService: tool-calling chat over the read-only business database
//   - IngestService: document extraction, chunking, and indexing
//   - VoiceService: transcribe -> rewrite -> render pipeline
//
// Session state is explicit: each service instance carries one Session
// constructed at startup and threaded through every call. There are no
// package-level singletons.
//
// # Import Rules
//
//   - Can Import: domain, ports, postprocessors, logger
//   - Cannot Import: adapters (driving or driven)
package services
