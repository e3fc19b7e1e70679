package persistence

import (
	"context"
	"sync"
)

// MemoryOptionStore is an in-process SettingsStore.
type MemoryOptionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryOptionStore creates a store seeded with initial values.
func NewMemoryOptionStore(initial map[string]string) *MemoryOptionStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryOptionStore{values: values}
}

func (s *MemoryOptionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryOptionStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryOptionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
