package notifier

import (
	"context"
	"time"
)

// Event types emitted over the lifetime of an approval request.
const (
	EventRequestCreated   = "request_created"
	EventStepAdvanced     = "step_advanced"
	EventRequestApproved  = "request_approved"
	EventRequestRejected  = "request_rejected"
	EventRequestCancelled = "request_cancelled"
)

// Event is the JSON payload handed to the notification dispatcher.
// Delivery is the dispatcher's responsibility; the engine only emits.
type Event struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	ActorID    string    `json:"actor_id"`
	StepOrder  int       `json:"step_order,omitempty"`
	StepName   string    `json:"step_name,omitempty"`
	StepRole   string    `json:"step_role,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits workflow lifecycle events. Implementations must be
// best-effort: a publish failure is logged, never propagated, so
// notification trouble cannot fail an approval operation.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Nop discards all events; used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
