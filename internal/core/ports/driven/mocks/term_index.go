package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
)

// MockTermIndex is an in-memory TermIndex for testing.
// It evaluates the plan's reference Match/Score semantics directly, so
// service tests exercise the real predicate and formula code.
type MockTermIndex struct {
	mu    sync.RWMutex
	terms []*domain.Term

	// SearchErr, when set, is returned by every Search call
	SearchErr error

	// Calls records the queries seen, for asserting fetch windows
	Calls []driven.TermQuery
}

// NewMockTermIndex creates a new MockTermIndex
func NewMockTermIndex() *MockTermIndex {
	return &MockTermIndex{}
}

// Seed replaces the index contents
func (m *MockTermIndex) Seed(terms []*domain.Term) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terms = terms
}

func (m *MockTermIndex) Search(ctx context.Context, plan domain.RetrievalPlan, q driven.TermQuery) ([]*domain.ScoredTerm, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, q)
	m.mu.Unlock()

	if m.SearchErr != nil {
		return nil, m.SearchErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var scored []*domain.ScoredTerm
	for _, t := range m.terms {
		if q.Category != "" && !strings.EqualFold(t.CategoryName, q.Category) {
			continue
		}
		if !plan.Match(t) {
			continue
		}
		entry := *t
		if !q.IncludeLongDefinition {
			entry.LongDefinition = ""
		}
		scored = append(scored, &domain.ScoredTerm{Term: &entry, Score: plan.Score(t)})
	}

	sortScored(scored, q.Sort)

	if q.Offset >= len(scored) {
		return nil, nil
	}
	scored = scored[q.Offset:]
	if q.Limit > 0 && len(scored) > q.Limit {
		scored = scored[:q.Limit]
	}
	return scored, nil
}

func sortScored(scored []*domain.ScoredTerm, mode domain.SortMode) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		switch mode {
		case domain.SortName:
			return strings.ToLower(a.Term.Name) < strings.ToLower(b.Term.Name)
		case domain.SortPopularity:
			return a.Term.ViewCount > b.Term.ViewCount
		case domain.SortRecent:
			return a.Term.UpdatedAt.After(b.Term.UpdatedAt)
		default: // relevance
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			return a.Term.ViewCount > b.Term.ViewCount
		}
	})
}
