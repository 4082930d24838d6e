package domain

// TicketRequest is a support-ticket submission on behalf of a user.
type TicketRequest struct {
	// UserName is the name of the user requesting support.
	UserName string

	// UserEmail is the user's contact email.
	UserEmail string

	// Title is a short summary of the request.
	Title string

	// Description is the detailed request body.
	Description string
}

// TicketResult is the outcome of a ticket submission. The external
// tracker is the system of record; results are never persisted locally.
type TicketResult struct {
	// Success reports whether the ticket was accepted.
	Success bool

	// Simulated is true when no tracker credentials were configured and
	// the dispatcher returned a best-effort payload without a network call.
	Simulated bool

	// TicketID is the tracker-assigned issue number.
	TicketID int

	// TicketURL is the tracker's web URL for the issue.
	TicketURL string

	// Title echoes the submitted title.
	Title string

	// UserName echoes the submitting user's name.
	UserName string

	// UserEmail echoes the submitting user's email.
	UserEmail string

	// Error holds the failure reason when Success is false.
	Error string
}
