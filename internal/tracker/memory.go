package tracker

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is an in-process Store. It keeps the flushed state separately
// from the live view so tests can simulate a crash by reopening from Durable.
type MemoryStore struct {
	mu      sync.RWMutex
	live    map[string]string
	durable map[string]string
	flushes int

	// FlushErr, when set, is returned by Flush instead of persisting.
	FlushErr error
}

// NewMemoryStore returns a store seeded with entries, which are treated as
// already durable.
func NewMemoryStore(entries map[string]string) *MemoryStore {
	return &MemoryStore{
		live:    maps.Clone(nonNil(entries)),
		durable: maps.Clone(nonNil(entries)),
	}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hash, ok := m.live[key]
	return hash, ok
}

// Set implements Store.
func (m *MemoryStore) Set(key, hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[key] = hash
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, key)
}

// Keys implements Store.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.live)
}

// Flush implements Store.
func (m *MemoryStore) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FlushErr != nil {
		return m.FlushErr
	}
	m.durable = maps.Clone(m.live)
	m.flushes++
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return m.Flush(context.Background())
}

// Durable returns a copy of the last flushed state.
func (m *MemoryStore) Durable() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.durable)
}

// Flushes returns how many times Flush succeeded.
func (m *MemoryStore) Flushes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flushes
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
