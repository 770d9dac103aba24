package media

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory BlobStore for tests and the storage
// fallback path.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Blob)}
}

func (m *MemoryStore) Store(_ context.Context, blob Blob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[blob.ID] = blob
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Blob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[id]
	if !ok {
		return Blob{}, ErrNotFound
	}
	return blob, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, id)
	return nil
}

func (m *MemoryStore) ListIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.blobs))
	for id := range m.blobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs = make(map[string]Blob)
	return nil
}
