package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	snap    Snapshot
	expires time.Time
}

// MemoryStore keeps snapshots in process. A zero ttl never expires. Expired
// entries are swept on Put.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok || (!e.expires.IsZero() && m.now().After(e.expires)) {
		return Snapshot{}, ErrNotFound
	}
	return e.snap, nil
}

func (m *MemoryStore) Put(ctx context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(m.entries, id)
		}
	}

	e := memoryEntry{snap: s}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	m.entries[s.ID] = e
	return nil
}
