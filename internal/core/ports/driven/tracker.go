package driven

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// IssueTracker dispatches support tickets to an external tracker.
// The tracker is the system of record; nothing is persisted locally.
//
// Implementations must not raise on missing credentials: the contract is
// to degrade to a simulated TicketResult so the surrounding chat flow
// always produces a coherent user-facing message.
type IssueTracker interface {
	// Create submits one ticket. No retries and no idempotency key -
	// resubmitting the same logical ticket after a transient failure
	// creates a duplicate.
	Create(ctx context.Context, req domain.TicketRequest) domain.TicketResult

	// ValidateConfig reports whether the tracker credentials grant
	// access to the configured repository.
	ValidateConfig(ctx context.Context) bool
}
