package mysql

import (
	"context"

	requestDomain "grants-approval-engine/internal/domain/request"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) Create(ctx context.Context, req *requestDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*requestDomain.Request, error) {
	var out requestDomain.Request
	res := r.db.WithContext(ctx).
		Preload("Actions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

// GetByRequestIDForUpdate locks the request row for the ongoing transaction.
// Actions are loaded after the lock is granted, so the guard logic sees the
// post-contention state. sqlite (tests) has no row locks; its single-writer
// transactions give the same serialization.
func (r *RequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*requestDomain.Request, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out requestDomain.Request
	if err := q.Where("request_id = ?", requestID).First(&out).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", out.ID).
		Order("id ASC").
		Find(&out.Actions).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RequestRepository) Save(ctx context.Context, req *requestDomain.Request) error {
	return r.db.WithContext(ctx).Omit("Actions").Save(req).Error
}

func (r *RequestRepository) AppendAction(ctx context.Context, a *requestDomain.Action) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *RequestRepository) ListActions(ctx context.Context, requestNumericID uint64) ([]requestDomain.Action, error) {
	var out []requestDomain.Action
	res := r.db.WithContext(ctx).
		Where("request_id = ?", requestNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RequestRepository) ListPendingByRole(ctx context.Context, role string) ([]requestDomain.Request, error) {
	var out []requestDomain.Request
	res := r.db.WithContext(ctx).
		Preload("Actions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("status = ? AND step_role = ?", requestDomain.StatusPending, role).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
