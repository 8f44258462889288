package requestmock

import (
	"context"

	domain "grants-approval-engine/internal/domain/request"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.Request, error)
	SaveFn                    func(ctx context.Context, r *domain.Request) error
	AppendActionFn            func(ctx context.Context, a *domain.Action) error
	ListActionsFn             func(ctx context.Context, requestNumericID uint64) ([]domain.Action, error)
	ListPendingByRoleFn       func(ctx context.Context, role string) ([]domain.Request, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) AppendAction(ctx context.Context, a *domain.Action) error {
	if m.AppendActionFn != nil {
		return m.AppendActionFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListActions(ctx context.Context, requestNumericID uint64) ([]domain.Action, error) {
	if m.ListActionsFn != nil {
		return m.ListActionsFn(ctx, requestNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListPendingByRole(ctx context.Context, role string) ([]domain.Request, error) {
	if m.ListPendingByRoleFn != nil {
		return m.ListPendingByRoleFn(ctx, role)
	}
	return nil, context.Canceled
}
