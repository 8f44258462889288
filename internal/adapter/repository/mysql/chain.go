package mysql

import (
	"context"

	chainDomain "grants-approval-engine/internal/domain/chain"

	"gorm.io/gorm"
)

type ChainRepository struct{ db *gorm.DB }

func NewChainRepository(db *gorm.DB) *ChainRepository { return &ChainRepository{db: db} }

func (r *ChainRepository) Create(ctx context.Context, d *chainDomain.Definition) error {
	// gorm cascades the Steps association in the same insert
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ChainRepository) GetByID(ctx context.Context, id uint64) (*chainDomain.Definition, error) {
	var out chainDomain.Definition
	res := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ChainRepository) GetByChainID(ctx context.Context, chainID string) (*chainDomain.Definition, error) {
	var out chainDomain.Definition
	res := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Where("chain_id = ?", chainID).
		First(&out)
	return &out, res.Error
}

func (r *ChainRepository) ListActiveByEntityType(ctx context.Context, entityType string) ([]chainDomain.Definition, error) {
	var out []chainDomain.Definition
	res := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Where("entity_type = ? AND active = ?", entityType, true).
		Order("priority ASC, id ASC").
		Find(&out)
	return out, res.Error
}
