package store

import (
	"sync"

	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory mapping from city name
// to its data bundle. Bundles are replaced whole, never patched, so
// each write is one map assignment under the lock.
type MemoryStore struct {
	mu      sync.RWMutex
	bundles map[string]weather.Bundle
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bundles: make(map[string]weather.Bundle),
	}
}

// Set stores or replaces the bundle for a city.
func (s *MemoryStore) Set(name string, b weather.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[name] = b
}

// Get returns the bundle for a city, if one was ever stored.
func (s *MemoryStore) Get(name string) (weather.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bundles[name]
	return b, ok
}

// Remove deletes a city's bundle.
func (s *MemoryStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bundles, name)
}
