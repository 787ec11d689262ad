// Package cache provides in-process ResultCache implementations for
// deployments without a Redis backend.
package cache

import (
	"context"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultCache = (*Passthrough)(nil)

// Passthrough is a ResultCache that never caches. Every call computes.
// Used when no cache backend is configured.
type Passthrough struct{}

// NewPassthrough creates a no-op ResultCache
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

// GetOrCompute always runs compute
func (p *Passthrough) GetOrCompute(ctx context.Context, key string, ttl time.Duration,
	compute func(ctx context.Context) (*domain.SearchResult, error)) (*domain.SearchResult, error) {
	return compute(ctx)
}

// Flush is a no-op: nothing is ever cached
func (p *Passthrough) Flush(ctx context.Context) error {
	return nil
}
