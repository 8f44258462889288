package workflow

import (
	"context"
	"errors"
	"time"

	domainChain "grants-approval-engine/internal/domain/chain"
	domainRequest "grants-approval-engine/internal/domain/request"
	"grants-approval-engine/internal/domain/uow"
	"grants-approval-engine/internal/identity"
	"grants-approval-engine/internal/infrastructure/notifier"
	"grants-approval-engine/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	chainRepo   domainChain.Repository
	requestRepo domainRequest.Repository
	uow         uow.UnitOfWork
	roles       identity.RoleLookup
	events      notifier.Publisher
}

// NewUsecase: repos for reads, a UoW for mutating flows, the identity
// collaborator for role checks, and an event publisher (may be notifier.Nop).
func NewUsecase(chains domainChain.Repository, requests domainRequest.Repository, tx uow.UnitOfWork, roles identity.RoleLookup, events notifier.Publisher) *Usecase {
	if events == nil {
		events = notifier.Nop{}
	}
	return &Usecase{chainRepo: chains, requestRepo: requests, uow: tx, roles: roles, events: events}
}

// Create resolves the chain for the entity and opens a pending request at
// step 1. The entity payload stays in its owning store; only the reference
// is recorded here.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*RequestSnapshot, error) {
	candidates, err := u.chainRepo.ListActiveByEntityType(ctx, in.EntityType)
	if err != nil {
		return nil, err
	}
	def, err := domainChain.Resolve(candidates, domainChain.Context{Amount: in.Amount})
	if err != nil {
		return nil, err
	}
	if len(def.Steps) == 0 {
		return nil, domainChain.ErrNoStepsDefined
	}
	first := def.StepAt(1)
	if first == nil {
		return nil, domainChain.ErrInvalidChain
	}

	now := time.Now().UTC()
	req := &domainRequest.Request{
		RequestID:     id.NewID32(),
		EntityType:    in.EntityType,
		EntityID:      in.EntityID,
		ChainID:       def.ID,
		ChainDefID:    def.ChainID,
		Status:        domainRequest.StatusPending,
		CurrentStep:   1,
		StepName:      first.StepName,
		StepRole:      first.ApproverRole,
		StepEnteredAt: now,
		TotalSteps:    len(def.Steps),
		SubmittedAt:   now,
	}
	if err := u.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	u.events.Publish(ctx, notifier.Event{
		EventType:  notifier.EventRequestCreated,
		RequestID:  req.RequestID,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		ActorID:    in.SubmittedBy,
		StepOrder:  req.CurrentStep,
		StepName:   req.StepName,
		StepRole:   req.StepRole,
		Status:     string(req.Status),
		OccurredAt: now,
	})
	return SnapshotOf(req, now), nil
}

// Decide applies one approve/reject decision. The whole read-modify-write
// runs under the request row lock, so a losing concurrent call observes
// ErrAlreadyTerminal or ErrStepMismatch instead of double-applying.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*RequestSnapshot, error) {
	if in.Decision != DecisionApprove && in.Decision != DecisionReject {
		return nil, errors.New("decision must be approve or reject")
	}

	// Role lookup happens outside the lock; the locked re-check below
	// compares against whatever step the request is actually at.
	approverRoles, err := u.roles.RolesOf(ctx, in.ApproverID)
	if err != nil {
		return nil, err
	}

	var snap *RequestSnapshot
	var event notifier.Event

	err = u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *domainRequest.Request) error {
		if req.Status.IsTerminal() {
			return domainRequest.ErrAlreadyTerminal
		}
		if in.StepOrder != req.CurrentStep {
			return domainRequest.ErrStepMismatch
		}
		if !identity.HasRole(approverRoles, req.StepRole) {
			return domainRequest.ErrUnauthorized
		}

		now := time.Now().UTC()
		act := &domainRequest.Action{
			ActionID:     id.NewID32(),
			RequestID:    req.ID,
			StepOrder:    req.CurrentStep,
			StepName:     req.StepName,
			ApproverID:   in.ApproverID,
			ApproverName: in.ApproverName,
			ActedAt:      now,
			Comments:     in.Comments,
		}

		switch in.Decision {
		case DecisionApprove:
			act.Action = domainRequest.ActionApproved
			if err := r.Requests.AppendAction(ctx, act); err != nil {
				return err
			}
			if req.CurrentStep >= req.TotalSteps {
				req.Status = domainRequest.StatusApproved
				req.CompletedAt = &now
				event.EventType = notifier.EventRequestApproved
			} else {
				def, err := r.Chains.GetByID(ctx, req.ChainID)
				if err != nil {
					return err
				}
				next := def.StepAt(req.CurrentStep + 1)
				if next == nil {
					return domainChain.ErrInvalidChain
				}
				req.CurrentStep++
				req.StepName = next.StepName
				req.StepRole = next.ApproverRole
				req.StepEnteredAt = now
				event.EventType = notifier.EventStepAdvanced
			}
		case DecisionReject:
			// Rejection at any step terminates the whole chain;
			// current_step stays frozen where the rejection happened.
			act.Action = domainRequest.ActionRejected
			if err := r.Requests.AppendAction(ctx, act); err != nil {
				return err
			}
			req.Status = domainRequest.StatusRejected
			req.CompletedAt = &now
			event.EventType = notifier.EventRequestRejected
		}

		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		req.Actions = append(req.Actions, *act)
		event.RequestID = req.RequestID
		event.EntityType = req.EntityType
		event.EntityID = req.EntityID
		event.ActorID = in.ApproverID
		event.StepOrder = req.CurrentStep
		event.StepName = req.StepName
		event.StepRole = req.StepRole
		event.Status = string(req.Status)
		event.OccurredAt = now
		snap = SnapshotOf(req, now)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRequest.ErrNotFound
		}
		return nil, err
	}

	u.events.Publish(ctx, event)
	return snap, nil
}

// Cancel terminates a pending request from the submitter side. No
// ApprovalAction is recorded: cancellation is a status change, not a
// step decision.
func (u *Usecase) Cancel(ctx context.Context, in CancelInput) (*RequestSnapshot, error) {
	var snap *RequestSnapshot
	var event notifier.Event

	err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *domainRequest.Request) error {
		if req.Status.IsTerminal() {
			return domainRequest.ErrAlreadyTerminal
		}
		now := time.Now().UTC()
		req.Status = domainRequest.StatusCancelled
		req.CompletedAt = &now
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		event = notifier.Event{
			EventType:  notifier.EventRequestCancelled,
			RequestID:  req.RequestID,
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			ActorID:    in.ActorID,
			Status:     string(req.Status),
			OccurredAt: now,
		}
		snap = SnapshotOf(req, now)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRequest.ErrNotFound
		}
		return nil, err
	}

	u.events.Publish(ctx, event)
	return snap, nil
}

// Get returns the current snapshot of a request.
func (u *Usecase) Get(ctx context.Context, requestID string) (*RequestSnapshot, error) {
	req, err := u.requestRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRequest.ErrNotFound
		}
		return nil, err
	}
	return SnapshotOf(req, time.Now().UTC()), nil
}

// History returns the request's actions strictly in append order.
func (u *Usecase) History(ctx context.Context, requestID string) ([]ActionDTO, error) {
	req, err := u.requestRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRequest.ErrNotFound
		}
		return nil, err
	}
	acts, err := u.requestRepo.ListActions(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ActionDTO, 0, len(acts))
	for _, a := range acts {
		out = append(out, actionDTO(a))
	}
	return out, nil
}
