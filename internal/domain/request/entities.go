package request

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("approval request not found")
	ErrAlreadyTerminal = errors.New("approval request already in a terminal status")
	ErrStepMismatch    = errors.New("decision targets a step that is not the current step")
	ErrUnauthorized    = errors.New("approver role does not match the current step")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool { return s != StatusPending }

type ActionKind string

const (
	ActionApproved ActionKind = "approved"
	ActionRejected ActionKind = "rejected"
)

// Table: approval_requests
type Request struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	RequestID  string `gorm:"column:request_id;type:char(32);not null;uniqueIndex" json:"request_id"`
	EntityType string `gorm:"column:entity_type;size:64;not null;index:idx_requests_entity" json:"entity_type"`
	// Opaque reference into the owning entity store; never dereferenced here.
	EntityID string `gorm:"column:entity_id;size:64;not null;index:idx_requests_entity" json:"entity_id"`
	// FK to approval_chains.id (numeric) plus the public ref for display
	ChainID    uint64 `gorm:"column:chain_id;not null;index" json:"-"`
	ChainDefID string `gorm:"column:chain_def_id;type:char(32);not null" json:"chain_def_id"`
	Status     Status `gorm:"column:status;type:enum('pending','approved','rejected','cancelled');default:'pending';index:idx_requests_queue" json:"status"`
	// 1-based index into the chain; meaningful only while pending
	CurrentStep int `gorm:"column:current_step;not null" json:"current_step"`
	StepName    string `gorm:"column:step_name;size:128;not null" json:"step_name"`
	// Required role of the current step, denormalized so queue listings
	// stay a single-table query.
	StepRole string `gorm:"column:step_role;size:64;not null;index:idx_requests_queue" json:"step_role"`
	// When the request entered its current step: submitted_at for step 1,
	// otherwise the acted_at of the action that advanced it.
	StepEnteredAt time.Time  `gorm:"column:step_entered_at;not null" json:"step_entered_at"`
	TotalSteps    int        `gorm:"column:total_steps;not null" json:"total_steps"`
	SubmittedAt   time.Time  `gorm:"column:submitted_at;not null" json:"submitted_at"`
	CompletedAt   *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Actions       []Action   `gorm:"foreignKey:RequestID;references:ID" json:"actions"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Request) TableName() string { return "approval_requests" }

// Table: approval_actions
type Action struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ActionID string `gorm:"column:action_id;type:char(32);not null;uniqueIndex" json:"action_id"`
	// FK to approval_requests.id (numeric)
	RequestID    uint64     `gorm:"column:request_id;not null;index" json:"-"`
	StepOrder    int        `gorm:"column:step_order;not null" json:"step_order"`
	StepName     string     `gorm:"column:step_name;size:128;not null" json:"step_name"`
	Action       ActionKind `gorm:"column:action;type:enum('approved','rejected');not null" json:"action"`
	ApproverID   string     `gorm:"column:approver_id;size:64;not null" json:"approver_id"`
	ApproverName string     `gorm:"column:approver_name;size:128" json:"approver_name"`
	ActedAt      time.Time  `gorm:"column:acted_at;not null" json:"acted_at"`
	Comments     string     `gorm:"column:comments;type:text" json:"comments,omitempty"`
}

func (Action) TableName() string { return "approval_actions" }

// CompletedSteps counts recorded approvals; actions must be loaded.
func (r *Request) CompletedSteps() int {
	n := 0
	for _, a := range r.Actions {
		if a.Action == ActionApproved {
			n++
		}
	}
	return n
}

// ProgressPercentage derives progress from the action history. A request
// with no steps at all reports 0 rather than dividing by zero.
func (r *Request) ProgressPercentage() float64 {
	total := r.TotalSteps
	if r.CurrentStep > total {
		total = r.CurrentStep
	}
	if total == 0 {
		return 0
	}
	return float64(r.CompletedSteps()) / float64(total) * 100
}

// DaysInQueue is whole days elapsed since the request entered its
// current step. Only meaningful while pending.
func (r *Request) DaysInQueue(now time.Time) int {
	d := now.Sub(r.StepEnteredAt)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
