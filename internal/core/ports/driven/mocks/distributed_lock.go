package mocks

import (
	"context"
	"sync"
	"time"
)

// MockDistributedLock is an in-memory DistributedLock for testing.
// TTLs are recorded but never enforced.
type MockDistributedLock struct {
	mu       sync.Mutex
	held     map[string]bool
	Acquires int

	// AcquireErr, when set, is returned by Acquire
	AcquireErr error

	// Denied, when true, makes every Acquire return false
	Denied bool
}

// NewMockDistributedLock creates a new MockDistributedLock
func NewMockDistributedLock() *MockDistributedLock {
	return &MockDistributedLock{held: make(map[string]bool)}
}

func (m *MockDistributedLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Acquires++
	if m.AcquireErr != nil {
		return false, m.AcquireErr
	}
	if m.Denied || m.held[name] {
		return false, nil
	}
	m.held[name] = true
	return true, nil
}

func (m *MockDistributedLock) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, name)
	return nil
}

func (m *MockDistributedLock) Ping(ctx context.Context) error {
	return nil
}
