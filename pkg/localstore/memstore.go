package localstore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemStore keeps values in memory. Used by tests and by CLI commands that
// have no reason to touch the local_kv table.
type MemStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string][]byte{}}
}

func (s *MemStore) Get(_ context.Context, key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found := s.values[key]
	if !found {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}

	return true, nil
}

func (s *MemStore) Put(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw

	return nil
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)

	return nil
}
