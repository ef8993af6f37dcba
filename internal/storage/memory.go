package storage

import (
	"context"
	"sync"
	"time"
)

// record is the stored shape: content plus the server-assigned write time.
type record struct {
	content   string
	createdAt time.Time
}

// MemoryBackend is a map-backed Backend used for development and unit tests.
type MemoryBackend struct {
	mu    sync.RWMutex
	store map[string]record
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{store: make(map[string]record)}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Put(_ context.Context, id, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[id] = record{content: content, createdAt: time.Now().UTC()}
	return nil
}

func (m *MemoryBackend) Get(_ context.Context, id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return "", ErrNotFound
	}
	return r.content, nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }
