package driven

import (
	"context"
	"time"
)

// DistributedLock coordinates work across instances.
// The warm worker uses it so only one instance refreshes the cache.
type DistributedLock interface {
	// Acquire attempts to acquire a named lock with the given TTL.
	// Returns true if acquired, false if held by another instance.
	// The lock auto-expires after TTL.
	Acquire(ctx context.Context, name string, ttl time.Duration) (acquired bool, err error)

	// Release releases a named lock. Best-effort; TTL expiry is the
	// backstop. Safe to call when the lock is not held.
	Release(ctx context.Context, name string) error

	// Ping checks if the lock backend is healthy.
	Ping(ctx context.Context) error
}
