package domain

// ReplyType discriminates the shapes a support query can resolve to.
type ReplyType string

// Reply types.
const (
	// ReplyAnswer is a direct answer grounded in retrieved documentation.
	ReplyAnswer ReplyType = "answer"

	// ReplyTicketCreated reports a successfully dispatched support ticket.
	ReplyTicketCreated ReplyType = "ticket_created"

	// ReplyTicketError reports a failed ticket dispatch.
	ReplyTicketError ReplyType = "ticket_error"

	// ReplyError reports an upstream failure. A query always yields a
	// renderable Reply; faults are converted, never propagated.
	ReplyError ReplyType = "error"
)

// Reply is the chat-shaped result of one support query.
type Reply struct {
	// Type discriminates the payload.
	Type ReplyType

	// Content is the user-facing message text.
	Content string

	// Sources holds the retrieval hits that grounded an answer.
	Sources []SearchResult

	// Ticket holds the dispatch outcome for ticket replies.
	Ticket *TicketResult

	// Err is the failure reason for error replies.
	Err string
}
