package kvstore

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local store. Nothing survives a restart, which makes
// it the backend of choice for tests and throwaway sessions.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns an empty in-memory store whose entries never expire.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

// Read implements Store.
func (m *MemoryStore) Read(key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

// Write implements Store.
func (m *MemoryStore) Write(key, value string) error {
	m.c.Set(key, value, gocache.NoExpiration)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.c.Flush()
	return nil
}
