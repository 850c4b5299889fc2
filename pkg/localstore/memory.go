package localstore

import (
	"context"
	"sync"
)

// Memory is a map-backed Storage. It is the default for tests and for
// deployments that accept cart loss on restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make([]byte, len(payload))
	copy(copied, payload)
	return copied, nil
}

func (m *Memory) Save(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(payload))
	copy(copied, payload)
	m.data[key] = copied
	return nil
}
