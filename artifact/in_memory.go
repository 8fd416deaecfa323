package artifact

import (
	"sort"
	"sync"
)

// InMemoryStore keeps artifacts in a nested process local map guarded by an
// RWMutex. Bytes are copied on save and on retrieval so callers can never
// mutate internal buffers. Suited for tests, examples and single process
// benchmark runs; it enforces no retention limits or size quotas.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]map[string][]byte // runID -> name -> data
}

// NewInMemoryStore returns an empty in memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[string]map[string][]byte)}
}

// Save stores a copy of the artifact bytes under the run and name.
func (s *InMemoryStore) Save(runID, name string, data []byte) error {
	if err := validateKey(runID, name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[runID]; !ok {
		s.runs[runID] = make(map[string][]byte)
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	s.runs[runID][name] = cp

	return nil
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (s *InMemoryStore) Get(runID, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, ErrNotFound
	}

	data, ok := run[name]
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	return cp, nil
}

// List returns the sorted artifact names stored for the run. A run with no
// artifacts yields an empty slice.
func (s *InMemoryStore) List(runID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return []string{}, nil
	}

	names := make([]string, 0, len(run))
	for name := range run {
		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

// Delete removes the artifact if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(runID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return ErrNotFound
	}

	if _, ok := run[name]; !ok {
		return ErrNotFound
	}

	delete(run, name)

	return nil
}
