package driving

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// SupportService answers user questions from indexed documentation and
// escalates to support tickets through model tool calls.
type SupportService interface {
	// Query runs one retrieval-augmented turn. It never returns an
	// error; failures are folded into a Reply of type ReplyError so a
	// chat turn always yields a renderable message.
	Query(ctx context.Context, userMessage string) domain.Reply

	// Stats reports the state of the underlying vector index.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Reset discards the conversation history.
	Reset()
}
