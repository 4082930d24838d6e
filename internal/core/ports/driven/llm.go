package driven

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// ChatService conducts tool-calling conversations with a hosted
// chat-completion model.
//
// Implementations may include:
//   - OpenAI (gpt-4o, gpt-4o-mini)
//   - Azure OpenAI or compatible APIs via base URL override
type ChatService interface {
	// Chat sends the ordered message list plus the declared tool schemas
	// and returns the model's turn: either content text, one or more
	// tool calls, or both. Tool choice is always "auto".
	Chat(ctx context.Context, messages []domain.Message, tools []ToolSpec, opts ChatOptions) (ChatTurn, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to fail fast on a bad API key.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// ChatTurn is one model response.
type ChatTurn struct {
	// Content is the assistant text, possibly empty when the model
	// only requests tools.
	Content string

	// ToolCalls holds the tool invocations requested in this turn.
	ToolCalls []domain.ToolCall
}

// ToolSpec declares one callable function to the model.
type ToolSpec struct {
	// Name is the function name the model will call.
	Name string

	// Description tells the model when to use the tool.
	Description string

	// Parameters is the JSON Schema object describing the arguments.
	Parameters map[string]any
}
