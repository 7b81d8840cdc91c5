package store

import (
	"context"
	"sync"
)

// Memory is a process-local Store, used by tests and STORE_DRIVER=memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Keys returns the number of stored keys.
func (m *Memory) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
