package domain

// Message roles. These mirror the chat-completion wire contract.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// DefaultWindowSize is the number of trailing messages passed to the
// model on each call.
const DefaultWindowSize = 10

// ToolCall is a structured request from the model to invoke a named
// function with JSON-encoded arguments.
type ToolCall struct {
	// ID is the model-assigned call identifier, echoed back in the
	// tool result message.
	ID string

	// Name is the function name.
	Name string

	// Arguments is the raw JSON argument object.
	Arguments string
}

// Message is one turn in a conversation. The log is append-only within
// a session; role ordering is not validated.
type Message struct {
	// Role is one of the Role* constants.
	Role string

	// Content is the message text.
	Content string

	// ToolCalls holds the tool invocations requested by an assistant turn.
	ToolCalls []ToolCall

	// ToolCallID links a tool-result message back to the call it answers.
	ToolCallID string
}

// Window returns the last n messages of history in original order.
// Truncation is purely positional; it is independent of token budget,
// so a single oversized message can still overflow the model context.
func Window(history []Message, n int) []Message {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
