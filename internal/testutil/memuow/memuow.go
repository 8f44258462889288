package memuow

import (
	"context"
	"sort"
	"sync"

	"grants-approval-engine/internal/domain/chain"
	"grants-approval-engine/internal/domain/request"
	"grants-approval-engine/internal/domain/uow"

	"gorm.io/gorm"
)

// Store is an in-memory stand-in for the MySQL layer: repositories plus a
// UnitOfWork whose WithinRequestTx serializes through one mutex, mirroring
// the row-lock semantics the real adapter gets from SELECT ... FOR UPDATE.
// Intended for usecase tests, especially concurrency ones.
type Store struct {
	mu       sync.Mutex
	nextID   uint64
	chains   map[uint64]*chain.Definition
	requests map[string]*request.Request
	actions  map[uint64][]request.Action
}

func New() *Store {
	return &Store{
		nextID:   1,
		chains:   map[uint64]*chain.Definition{},
		requests: map[string]*request.Request{},
		actions:  map[uint64][]request.Action{},
	}
}

func (s *Store) Repos() uow.Repos {
	return uow.Repos{Chains: &chainRepo{s: s}, Requests: &requestRepo{s: s}}
}

// SeedChain registers a definition and assigns its numeric id.
func (s *Store) SeedChain(d *chain.Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		d.ID = s.nextID
		s.nextID++
	}
	s.chains[d.ID] = d
}

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.Repos())
}

func (s *Store) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, req *request.Request) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// hand out a copy; the fn persists via Save, same as the real adapter
	cp := *req
	cp.Actions = append([]request.Action(nil), s.actions[req.ID]...)
	return fn(s.Repos(), &cp)
}

var _ uow.UnitOfWork = (*Store)(nil)

// ---- repositories ----
// Locking note: methods called inside WithinTx/WithinRequestTx already hold
// s.mu, so they must not re-lock. The store is built for tests that either
// go through the UoW or touch repos from a single goroutine.

type chainRepo struct{ s *Store }

func (r *chainRepo) Create(ctx context.Context, d *chain.Definition) error {
	r.s.SeedChain(d)
	return nil
}

func (r *chainRepo) GetByID(ctx context.Context, id uint64) (*chain.Definition, error) {
	if d, ok := r.s.chains[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *chainRepo) GetByChainID(ctx context.Context, chainID string) (*chain.Definition, error) {
	for _, d := range r.s.chains {
		if d.ChainID == chainID {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *chainRepo) ListActiveByEntityType(ctx context.Context, entityType string) ([]chain.Definition, error) {
	var out []chain.Definition
	for _, d := range r.s.chains {
		if d.EntityType == entityType && d.Active {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type requestRepo struct{ s *Store }

func (r *requestRepo) Create(ctx context.Context, req *request.Request) error {
	req.ID = r.s.nextID
	r.s.nextID++
	cp := *req
	r.s.requests[req.RequestID] = &cp
	return nil
}

func (r *requestRepo) GetByRequestID(ctx context.Context, requestID string) (*request.Request, error) {
	req, ok := r.s.requests[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	cp.Actions = append([]request.Action(nil), r.s.actions[req.ID]...)
	return &cp, nil
}

func (r *requestRepo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*request.Request, error) {
	return r.GetByRequestID(ctx, requestID)
}

func (r *requestRepo) Save(ctx context.Context, req *request.Request) error {
	cp := *req
	cp.Actions = nil
	r.s.requests[req.RequestID] = &cp
	return nil
}

func (r *requestRepo) AppendAction(ctx context.Context, a *request.Action) error {
	a.ID = r.s.nextID
	r.s.nextID++
	r.s.actions[a.RequestID] = append(r.s.actions[a.RequestID], *a)
	return nil
}

func (r *requestRepo) ListActions(ctx context.Context, requestNumericID uint64) ([]request.Action, error) {
	return append([]request.Action(nil), r.s.actions[requestNumericID]...), nil
}

func (r *requestRepo) ListPendingByRole(ctx context.Context, role string) ([]request.Request, error) {
	var out []request.Request
	for _, req := range r.s.requests {
		if req.Status == request.StatusPending && req.StepRole == role {
			cp := *req
			cp.Actions = append([]request.Action(nil), r.s.actions[req.ID]...)
			out = append(out, cp)
		}
	}
	// oldest submission first
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
