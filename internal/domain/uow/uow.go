package uow

import (
	"context"

	"grants-approval-engine/internal/domain/chain"
	"grants-approval-engine/internal/domain/request"
)

type Repos struct {
	Chains   chain.Repository
	Requests request.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the request row first, then pass it in — every
	// Decide/Cancel mutation runs through this so concurrent decisions
	// against one request serialize at the storage layer
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, req *request.Request) error) error
}
