package storage

import (
	"context"
	"sync"
)

const (
	CartKey      = "bitecraft_cart"
	LastOrderKey = "bitecraft_last_order"
)

// Slots is a durable key/value store of named text values. Writes replace
// the whole value.
type Slots interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
}

type MemorySlots struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: make(map[string]string)}
}

func (m *MemorySlots) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySlots) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
