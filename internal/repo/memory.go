package repo

import (
	"context"
	"sync"
)

// memoryKVStore keeps values in a process-local map.
// Used by unit tests and by the "memory" store driver.
type memoryKVStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryKVStore constructs an empty in-memory KVStore.
func NewMemoryKVStore() KVStore {
	return &memoryKVStore{entries: make(map[string][]byte)}
}

func (s *memoryKVStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte{}, value...)
	return nil
}

func (s *memoryKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, v...), true, nil
}
