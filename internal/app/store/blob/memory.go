package blob

import (
	"bytes"
	"context"
	"sync"
)

// Memory is a process-local backend. Values are copied in and out.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	subs map[string][]func()
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}, subs: map[string][]func(){}}
}

// Load implements Backend.
func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

// Save implements Backend.
func (m *Memory) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = bytes.Clone(data)
	m.mu.Unlock()
	return nil
}

// Replace stores data as if written by another process and notifies watchers.
func (m *Memory) Replace(key string, data []byte) {
	m.mu.Lock()
	m.data[key] = bytes.Clone(data)
	fns := append([]func(){}, m.subs[key]...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Watch implements Watcher; only Replace triggers onChange.
func (m *Memory) Watch(ctx context.Context, key string, onChange func()) error {
	m.mu.Lock()
	m.subs[key] = append(m.subs[key], onChange)
	m.mu.Unlock()
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error { return nil }
