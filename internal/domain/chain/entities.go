package chain

import (
	"errors"
	"time"
)

var (
	ErrUnknownChainType = errors.New("no approval chain defined for entity type")
	ErrNoStepsDefined   = errors.New("approval chain has no steps")
	ErrInvalidChain     = errors.New("approval chain steps must be a contiguous sequence starting at 1")
	ErrInvalidBracket   = errors.New("approval chain min_amount exceeds max_amount")
)

// Table: approval_chains
type Definition struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ChainID    string `gorm:"column:chain_id;type:char(32);not null;uniqueIndex"`
	EntityType string `gorm:"column:entity_type;size:64;not null;index:idx_chains_entity_active"`
	// Optional amount bracket selector; nil means open bound.
	MinAmount *float64 `gorm:"column:min_amount;type:decimal(18,2)"`
	MaxAmount *float64 `gorm:"column:max_amount;type:decimal(18,2)"`
	// Lower priority is evaluated first when several brackets overlap.
	Priority  int       `gorm:"column:priority;not null;default:100"`
	Active    bool      `gorm:"column:active;not null;default:true;index:idx_chains_entity_active"`
	Steps     []Step    `gorm:"foreignKey:ChainID;references:ID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Definition) TableName() string { return "approval_chains" }

// Table: approval_chain_steps
type Step struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FK to approval_chains.id (numeric)
	ChainID uint64 `gorm:"column:chain_id;not null;index"`
	// 1-based, contiguous within a chain
	StepOrder    int    `gorm:"column:step_order;not null"`
	StepName     string `gorm:"column:step_name;size:128;not null"`
	ApproverRole string `gorm:"column:approver_role;size:64;not null"`
}

func (Step) TableName() string { return "approval_chain_steps" }

// Context carries the request attributes a bracket selector may match on.
type Context struct {
	Amount *float64
}

// Matches reports whether the definition's selector accepts rc.
// A definition without bounds matches any context.
func (d *Definition) Matches(rc Context) bool {
	if d.MinAmount == nil && d.MaxAmount == nil {
		return true
	}
	if rc.Amount == nil {
		return false
	}
	if d.MinAmount != nil && *rc.Amount < *d.MinAmount {
		return false
	}
	if d.MaxAmount != nil && *rc.Amount > *d.MaxAmount {
		return false
	}
	return true
}

// StepAt returns the step with the given 1-based order, or nil.
func (d *Definition) StepAt(order int) *Step {
	for i := range d.Steps {
		if d.Steps[i].StepOrder == order {
			return &d.Steps[i]
		}
	}
	return nil
}

// Resolve picks the definition a new request must follow: the first
// active definition (candidates come in priority order) whose selector
// matches rc. Deterministic for a given candidate list and context.
func Resolve(candidates []Definition, rc Context) (*Definition, error) {
	for i := range candidates {
		d := &candidates[i]
		if !d.Active {
			continue
		}
		if d.Matches(rc) {
			return d, nil
		}
	}
	return nil, ErrUnknownChainType
}

// ValidateBracket rejects inverted amount bounds, which no context
// could ever match.
func (d *Definition) ValidateBracket() error {
	if d.MinAmount != nil && d.MaxAmount != nil && *d.MinAmount > *d.MaxAmount {
		return ErrInvalidBracket
	}
	return nil
}

// ValidateSteps enforces the chain invariant: at least one step and
// step orders forming 1..n with no gaps or duplicates.
func (d *Definition) ValidateSteps() error {
	if len(d.Steps) == 0 {
		return ErrNoStepsDefined
	}
	seen := make(map[int]bool, len(d.Steps))
	for _, s := range d.Steps {
		if s.StepOrder < 1 || s.StepOrder > len(d.Steps) || seen[s.StepOrder] {
			return ErrInvalidChain
		}
		seen[s.StepOrder] = true
	}
	return nil
}
