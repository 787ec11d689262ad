package driving

import (
	"context"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// SearchService is the primary driving port for glossary search
type SearchService interface {
	// Search runs the adaptive query pipeline: classify the query,
	// build a retrieval plan, execute it with pagination, and cache
	// the result snapshot. Any failure surfaces as a single wrapped
	// error; there is no partial-result fallback.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)

	// Warm runs the pipeline for a list of common queries to populate
	// the cache. Per-query failures are logged and skipped; the batch
	// never aborts. Returns the number of queries warmed.
	Warm(ctx context.Context, queries []string) int
}
