package snapshot

import (
	"context"
	"sync"
)

// MemoryStore keeps encoded blobs in a map. Used in tests and for one-shot CLI runs.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Save(ctx context.Context, s *Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[s.ID] = data
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	data, ok := m.blobs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(data)
}

func (m *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0, len(m.blobs))
	for _, data := range m.blobs {
		s, err := Decode(data)
		if err != nil {
			continue
		}
		out = append(out, s.Summary())
	}
	sortSummaries(out)
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.blobs, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
