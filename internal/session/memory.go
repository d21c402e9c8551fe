package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps sessions in process. Entries are stored as JSON so
// callers never share slices with the store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context) (*Session, error) {
	s := New()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	if err := m.put(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(id)
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.load(id)
	if err != nil {
		return nil, err
	}
	fnErr := fn(s)
	s.UpdatedAt = m.now().UTC()
	if err := m.put(s); err != nil {
		return nil, err
	}
	return s, fnErr
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) load(id string) (*Session, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().After(e.expires) {
		delete(m.entries, id)
		return nil, ErrNotFound
	}
	var s Session
	if err := json.Unmarshal(e.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) put(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.entries[s.ID] = memoryEntry{data: data, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) sweep() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for id, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, id)
		}
	}
}
