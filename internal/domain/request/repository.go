package request

import "context"

type Repository interface {
	// Create a new request (no actions yet)
	Create(ctx context.Context, r *Request) error

	// Get by public request_id, actions preloaded in append order
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)

	// Same, but row-locked (SELECT ... FOR UPDATE) for read-modify-write
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)

	// Persist mutated request fields
	Save(ctx context.Context, r *Request) error

	// Append one immutable action row
	AppendAction(ctx context.Context, a *Action) error

	// Actions of a request, append order
	ListActions(ctx context.Context, requestNumericID uint64) ([]Action, error)

	// Pending requests whose current step requires role, oldest submitted first
	ListPendingByRole(ctx context.Context, role string) ([]Request, error)
}
