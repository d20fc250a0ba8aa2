// Package cache provides a small in-process store with per-entry expiry. It
// is constructor-injected wherever cached reads are wanted; there is no
// package-level singleton.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Store is a TTL key/value store safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewStore creates a store whose entries expire after the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key, or false if absent or expired.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key with the store's TTL.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
}

// Delete removes a key. Removing an absent key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Purge drops every expired entry. Callers with long-lived stores can run it
// periodically; reads never return expired values either way.
func (s *Store) Purge() {
	now := time.Now()
	s.mu.Lock()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len reports the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
