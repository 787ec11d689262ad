package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// MockResultCache is an in-memory ResultCache for testing.
// TTLs are recorded but never enforced.
type MockResultCache struct {
	mu      sync.Mutex
	entries map[string]*domain.SearchResult

	// Keys records every key seen, for asserting key composition
	Keys []string

	// TTLs records the TTL passed with each GetOrCompute call
	TTLs []time.Duration

	// Hits counts lookups served from the map without computing
	Hits int

	// Flushes counts Flush calls
	Flushes int
}

// NewMockResultCache creates a new MockResultCache
func NewMockResultCache() *MockResultCache {
	return &MockResultCache{
		entries: make(map[string]*domain.SearchResult),
	}
}

func (m *MockResultCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration,
	compute func(ctx context.Context) (*domain.SearchResult, error)) (*domain.SearchResult, error) {
	m.mu.Lock()
	m.Keys = append(m.Keys, key)
	m.TTLs = append(m.TTLs, ttl)
	cached, ok := m.entries[key]
	if ok {
		m.Hits++
	}
	m.mu.Unlock()

	if ok {
		return cached, nil
	}

	result, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = result
	m.mu.Unlock()
	return result, nil
}

// Flush clears all cached entries and records the call.
func (m *MockResultCache) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*domain.SearchResult)
	m.Flushes++
	return nil
}
