package chain

import "context"

type Repository interface {
	// Create a new chain definition together with its steps
	Create(ctx context.Context, d *Definition) error

	// Get by numeric PK, steps preloaded
	GetByID(ctx context.Context, id uint64) (*Definition, error)

	// Get by public chain_id, steps preloaded
	GetByChainID(ctx context.Context, chainID string) (*Definition, error)

	// Active definitions for an entity type, priority ascending, steps preloaded
	ListActiveByEntityType(ctx context.Context, entityType string) ([]Definition, error)
}
