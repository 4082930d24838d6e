package driving

import "context"

// SampleQuery is a canned query surfaced to users as a starting point.
type SampleQuery struct {
	// Description says what the query answers in business terms.
	Description string

	// Query is the SQL text.
	Query string
}

// DataChatService conducts a tool-calling conversation over the
// read-only business database.
type DataChatService interface {
	// Chat runs one user turn, dispatching model tool calls until a
	// turn contains none, and returns the final assistant content.
	Chat(ctx context.Context, userMessage string) (string, error)

	// SampleQueries returns the canned query catalogue.
	SampleQueries() []SampleQuery

	// Reset discards the conversation history, keeping the system prompt.
	Reset()
}
