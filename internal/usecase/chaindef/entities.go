package chaindef

import "time"

type StepInput struct {
	StepOrder    int    `json:"step_order"`
	StepName     string `json:"step_name"`
	ApproverRole string `json:"approver_role"`
}

type CreateChainInput struct {
	EntityType string      `json:"entity_type"`
	MinAmount  *float64    `json:"min_amount"`
	MaxAmount  *float64    `json:"max_amount"`
	Priority   int         `json:"priority"`
	Steps      []StepInput `json:"steps"`
}

type StepDTO struct {
	StepOrder    int    `json:"step_order"`
	StepName     string `json:"step_name"`
	ApproverRole string `json:"approver_role"`
}

type ChainDTO struct {
	ChainID    string    `json:"chain_id"`
	EntityType string    `json:"entity_type"`
	MinAmount  *float64  `json:"min_amount,omitempty"`
	MaxAmount  *float64  `json:"max_amount,omitempty"`
	Priority   int       `json:"priority"`
	Active     bool      `json:"active"`
	Steps      []StepDTO `json:"steps"`
	CreatedAt  time.Time `json:"created_at"`
}
