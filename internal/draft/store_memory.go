package draft

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"wastetrack/pkg/platform/sentinel"
)

// InMemoryStore is a mutex-guarded map store for tests and local runs.
type InMemoryStore struct {
	mu          sync.RWMutex
	submissions map[uuid.UUID]*Submission
}

// NewInMemoryStore returns an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{submissions: make(map[uuid.UUID]*Submission)}
}

// clone deep-copies a submission through JSON so callers can never mutate
// stored state in place.
func clone(s *Submission) *Submission {
	raw, err := json.Marshal(s)
	if err != nil {
		panic("submission not serializable: " + err.Error())
	}
	var out Submission
	if err := json.Unmarshal(raw, &out); err != nil {
		panic("submission not deserializable: " + err.Error())
	}
	return &out
}

func (m *InMemoryStore) Create(_ context.Context, s *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.submissions[s.ID]; exists {
		return sentinel.ErrConflict
	}
	m.submissions[s.ID] = clone(s)
	return nil
}

func (m *InMemoryStore) Get(_ context.Context, accountID, id uuid.UUID) (*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[id]
	if !ok || s.AccountID != accountID || s.State.Status.Terminal() {
		return nil, sentinel.ErrNotFound
	}
	return clone(s), nil
}

func (m *InMemoryStore) Update(_ context.Context, s *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.submissions[s.ID]; !exists {
		return sentinel.ErrNotFound
	}
	m.submissions[s.ID] = clone(s)
	return nil
}

func (m *InMemoryStore) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Submission
	for _, s := range m.submissions {
		if s.AccountID == accountID && !s.State.Status.Terminal() {
			out = append(out, clone(s))
		}
	}
	return out, nil
}
