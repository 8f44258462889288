package workflow

import (
	"time"

	"grants-approval-engine/internal/domain/request"
)

type CreateInput struct {
	EntityType  string
	EntityID    string
	Amount      *float64 // feeds chain bracket selection; nil = no amount
	SubmittedBy string
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type DecideInput struct {
	RequestID    string
	StepOrder    int // must equal the request's current step
	Decision     Decision
	ApproverID   string
	ApproverName string
	Comments     string
}

type CancelInput struct {
	RequestID string
	ActorID   string
}

type ActionDTO struct {
	ActionID     string    `json:"action_id"`
	StepOrder    int       `json:"step_order"`
	StepName     string    `json:"step_name"`
	Action       string    `json:"action"`
	ApproverID   string    `json:"approver_id"`
	ApproverName string    `json:"approver_name,omitempty"`
	ActedAt      time.Time `json:"acted_at"`
	Comments     string    `json:"comments,omitempty"`
}

// RequestSnapshot is the read-model view handed to callers: the persisted
// request plus the derived numbers every consumer must agree on.
type RequestSnapshot struct {
	RequestID          string      `json:"request_id"`
	EntityType         string      `json:"entity_type"`
	EntityID           string      `json:"entity_id"`
	ChainDefID         string      `json:"chain_def_id"`
	Status             string      `json:"status"`
	CurrentStep        int         `json:"current_step"`
	StepName           string      `json:"step_name"`
	StepRole           string      `json:"step_role"`
	TotalSteps         int         `json:"total_steps"`
	CompletedSteps     int         `json:"completed_steps"`
	ProgressPercentage float64     `json:"progress_percentage"`
	DaysInQueue        *int        `json:"days_in_queue,omitempty"` // pending only
	SubmittedAt        time.Time   `json:"submitted_at"`
	CompletedAt        *time.Time  `json:"completed_at,omitempty"`
	Actions            []ActionDTO `json:"actions"`
}

// SnapshotOf projects a request (actions loaded) into its read model.
func SnapshotOf(r *request.Request, now time.Time) *RequestSnapshot {
	s := &RequestSnapshot{
		RequestID:          r.RequestID,
		EntityType:         r.EntityType,
		EntityID:           r.EntityID,
		ChainDefID:         r.ChainDefID,
		Status:             string(r.Status),
		CurrentStep:        r.CurrentStep,
		StepName:           r.StepName,
		StepRole:           r.StepRole,
		TotalSteps:         r.TotalSteps,
		CompletedSteps:     r.CompletedSteps(),
		ProgressPercentage: r.ProgressPercentage(),
		SubmittedAt:        r.SubmittedAt,
		CompletedAt:        r.CompletedAt,
		Actions:            make([]ActionDTO, 0, len(r.Actions)),
	}
	if r.Status == request.StatusPending {
		d := r.DaysInQueue(now)
		s.DaysInQueue = &d
	}
	for _, a := range r.Actions {
		s.Actions = append(s.Actions, actionDTO(a))
	}
	return s
}

func actionDTO(a request.Action) ActionDTO {
	return ActionDTO{
		ActionID:     a.ActionID,
		StepOrder:    a.StepOrder,
		StepName:     a.StepName,
		Action:       string(a.Action),
		ApproverID:   a.ApproverID,
		ApproverName: a.ApproverName,
		ActedAt:      a.ActedAt,
		Comments:     a.Comments,
	}
}
