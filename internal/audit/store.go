package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Sink receives audit events. Implementations must tolerate concurrent
// Append calls.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// InMemoryStore is an append-only in-process sink that also supports reads,
// for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByDraft returns the trail for one declaration in append order.
func (s *InMemoryStore) ListByDraft(_ context.Context, draftID uuid.UUID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.DraftID == draftID {
			out = append(out, e)
		}
	}
	return out, nil
}
