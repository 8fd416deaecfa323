package session

import (
	"sync"

	"github.com/hupe1980/telcoagents/core"
)

// InMemoryStore is a volatile Store keeping records in a process local map.
// It is safe for concurrent access. Records are cloned on the way in and out
// so callers can never mutate internal state.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// NewInMemoryStore constructs an empty in memory record store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*Record)}
}

// Create stores a clone of the given record under its id.
func (s *InMemoryStore) Create(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return ErrExists
	}

	s.records[rec.ID] = rec.Clone()
	s.order = append(s.order, rec.ID)

	return nil
}

// Append adds committed messages to an existing record, flattening tool
// result bundles into one entry per result.
func (s *InMemoryStore) Append(id string, msgs ...core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}

	for _, m := range msgs {
		if multi, ok := m.(*core.MultiToolMessage); ok {
			for _, tm := range multi.Messages {
				rec.Messages = append(rec.Messages, tm)
			}

			continue
		}

		rec.Messages = append(rec.Messages, m)
	}

	return nil
}

// Get returns a clone of the record stored under the given id.
func (s *InMemoryStore) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	return rec.Clone(), nil
}

// List returns clones of all records in creation order.
func (s *InMemoryStore) List() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}

	return out
}

// Delete removes the record stored under the given id.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}

	delete(s.records, id)

	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}

	return nil
}
