package driven

import (
	"context"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// ResultCache is the get-or-compute cache wrapping the search pipeline.
// Keys are opaque strings built from the full request parameter tuple.
// Entries expire passively after their TTL; the only invalidation is the
// bulk Flush after imports. Concurrency discipline (locking, single-flight)
// is the implementation's concern - callers are cache-oblivious and always
// compute as if uncached.
type ResultCache interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration,
		compute func(ctx context.Context) (*domain.SearchResult, error)) (*domain.SearchResult, error)

	// Flush removes every cached result. Called after a term import so
	// stale pages do not outlive the data they were computed from.
	Flush(ctx context.Context) error
}
