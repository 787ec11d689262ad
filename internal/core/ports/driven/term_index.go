package driven

import (
	"context"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// TermQuery carries the paging and filtering parameters of one index fetch.
// The matching predicate and relevance formula come from the RetrievalPlan;
// TermQuery only shapes the window of rows returned.
type TermQuery struct {
	Category              string
	Sort                  domain.SortMode
	Limit                 int
	Offset                int
	IncludeLongDefinition bool
}

// TermIndex executes a retrieval plan against the term corpus.
// Implementations must order and score rows exactly as the plan's
// Match/Score reference semantics describe, fetch at most q.Limit rows
// starting at q.Offset, and join the category name when available.
type TermIndex interface {
	Search(ctx context.Context, plan domain.RetrievalPlan, q TermQuery) ([]*domain.ScoredTerm, error)
}
