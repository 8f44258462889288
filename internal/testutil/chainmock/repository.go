package chainmock

import (
	"context"

	domain "grants-approval-engine/internal/domain/chain"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, d *domain.Definition) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Definition, error)
	GetByChainIDFn           func(ctx context.Context, chainID string) (*domain.Definition, error)
	ListActiveByEntityTypeFn func(ctx context.Context, entityType string) ([]domain.Definition, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Definition) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Definition, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByChainID(ctx context.Context, chainID string) (*domain.Definition, error) {
	if m.GetByChainIDFn != nil {
		return m.GetByChainIDFn(ctx, chainID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListActiveByEntityType(ctx context.Context, entityType string) ([]domain.Definition, error) {
	if m.ListActiveByEntityTypeFn != nil {
		return m.ListActiveByEntityTypeFn(ctx, entityType)
	}
	return nil, context.Canceled
}
