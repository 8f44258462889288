package notifiermock

import (
	"context"
	"sync"

	"grants-approval-engine/internal/infrastructure/notifier"
)

// Sink records published events for assertions. Safe for concurrent use.
type Sink struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (s *Sink) Publish(_ context.Context, ev notifier.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *Sink) Events() []notifier.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notifier.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Sink) Last() (notifier.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return notifier.Event{}, false
	}
	return s.events[len(s.events)-1], true
}
