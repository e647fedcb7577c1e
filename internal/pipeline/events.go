package pipeline

import (
	"sync"
	"time"

	"briefdesk/internal/model"
)

// EventSink receives a run's append-only log. The pipeline takes a sink
// explicitly so no process-global log buffer exists.
type EventSink interface {
	Append(event model.Event)
}

// MemorySink retains events in order for dashboard display
type MemorySink struct {
	mu     sync.Mutex
	events []model.Event
}

// NewMemorySink creates an empty sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append adds an event to the sink
func (s *MemorySink) Append(event model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a copy of the appended events, in order
func (s *MemorySink) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// event builds a timestamped event for the given stage
func event(stage model.RunState, message string) model.Event {
	return model.Event{
		At:      time.Now().UTC(),
		Stage:   string(stage),
		Message: message,
	}
}
