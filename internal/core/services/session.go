package services

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// Session holds the per-session conversation state. It is constructed
// once and threaded explicitly through the query loop; there is exactly
// one logical caller at a time, so no locking is needed.
type Session struct {
	id      string
	system  string
	history []domain.Message
}

// NewSession creates a session with an optional system prompt. When set,
// the system prompt survives Reset and is not part of the windowed
// history (the support loop rebuilds its message list each turn).
func NewSession(systemPrompt string) *Session {
	return &Session{
		id:     uuid.New().String(),
		system: systemPrompt,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SystemPrompt returns the session's system prompt, possibly empty.
func (s *Session) SystemPrompt() string {
	return s.system
}

// Append adds a message to the log. The log is append-only during a
// session.
func (s *Session) Append(msg domain.Message) {
	s.history = append(s.history, msg)
}

// History returns the full message log.
func (s *Session) History() []domain.Message {
	return s.history
}

// Window returns the last n messages of the log.
func (s *Session) Window(n int) []domain.Message {
	return domain.Window(s.history, n)
}

// Reset discards the message log.
func (s *Session) Reset() {
	s.history = nil
}
