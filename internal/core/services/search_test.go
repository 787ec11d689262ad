package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// glossaryFixture seeds an AI/ML corpus with distinct popularity values
// so relevance ordering is deterministic.
func glossaryFixture() []*domain.Term {
	now := time.Now()
	return []*domain.Term{
		{ID: "t1", Name: "Machine Learning", ShortDefinition: "Algorithms that improve from data", LongDefinition: "Extended treatment of statistical learning.", CategoryName: "Foundations", ViewCount: 900, UpdatedAt: now},
		{ID: "t2", Name: "Machine Learning Pipeline", ShortDefinition: "End-to-end training workflow", CategoryName: "Engineering", ViewCount: 300, UpdatedAt: now.Add(-time.Hour)},
		{ID: "t3", Name: "Supervised Learning", ShortDefinition: "Learning from labeled data by a machine", CategoryName: "Foundations", ViewCount: 500, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "t4", Name: "Deep Learning", ShortDefinition: "Neural networks with many layers", CategoryName: "Foundations", ViewCount: 800, UpdatedAt: now.Add(-3 * time.Hour)},
		{ID: "t5", Name: "Transformer", ShortDefinition: "Attention-based architecture", LongDefinition: "Self-attention in depth.", CategoryName: "Architecture", ViewCount: 700, UpdatedAt: now.Add(-4 * time.Hour)},
		{ID: "t6", Name: "Vision Transformer", ShortDefinition: "Transformer applied to images", CategoryName: "Architecture", ViewCount: 200, UpdatedAt: now.Add(-5 * time.Hour)},
		{ID: "t7", Name: "BERT", ShortDefinition: "A transformer encoder for language", CategoryName: "Models", ViewCount: 300, UpdatedAt: now.Add(-6 * time.Hour)},
		{ID: "t8", Name: "AI Ethics", ShortDefinition: "Responsible development practices", CategoryName: "Society", ViewCount: 100, UpdatedAt: now.Add(-7 * time.Hour)},
		{ID: "t9", Name: "AI Alignment", ShortDefinition: "Keeping objectives compatible with intent", CategoryName: "Society", ViewCount: 50, UpdatedAt: now.Add(-8 * time.Hour)},
		{ID: "t10", Name: "Gradient Descent", ShortDefinition: "Iterative optimisation method", CategoryName: "Foundations", ViewCount: 600, UpdatedAt: now.Add(-9 * time.Hour)},
	}
}

func newTestPipeline(cfg PlannerConfig) (*mocks.MockTermIndex, *mocks.MockResultCache, *searchService) {
	index := mocks.NewMockTermIndex()
	index.Seed(glossaryFixture())
	cache := mocks.NewMockResultCache()
	svc := NewSearchService(index, cache, NewQueryAnalyzer(AnalyzerConfig{}), NewStrategyScorer(cfg.GenericThreshold), cfg, discardLogger())
	return index, cache, svc.(*searchService)
}

func TestSearch_ShortQueryUsesPrefix(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	result, err := svc.Search(context.Background(), "ai", domain.DefaultSearchOptions())
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyPrefix, result.Strategy)
	assert.False(t, result.IsGeneric)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "AI Ethics", result.Results[0].Term.Name) // higher popularity first
	assert.Equal(t, "AI Alignment", result.Results[1].Term.Name)
	assert.False(t, result.HasMore)
}

func TestSearch_FuzzyScoringAndSentinel(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	opts := domain.SearchOptions{Page: 1, Limit: 2}
	result, err := svc.Search(context.Background(), "transformer", opts)
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyFuzzy, result.Strategy)
	require.Len(t, result.Results, 2, "the sentinel row must be dropped, never shown")
	assert.Equal(t, "Transformer", result.Results[0].Term.Name)
	assert.Equal(t, "Vision Transformer", result.Results[1].Term.Name)
	assert.True(t, result.HasMore)
	assert.Equal(t, 3, result.Total) // lower-bound estimate: 2 shown + 1 sentinel

	// Exactly limit rows: no sentinel, hasMore false.
	result, err = svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 3})
	require.NoError(t, err)
	require.Len(t, result.Results, 3)
	assert.False(t, result.HasMore)
	assert.Equal(t, 3, result.Total)
}

func TestSearch_FuzzyScoreOrdering(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	result, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, result.Results, 3)
	for i := 1; i < len(result.Results); i++ {
		assert.GreaterOrEqual(t, result.Results[i-1].Score, result.Results[i].Score)
	}
	for _, r := range result.Results {
		assert.GreaterOrEqual(t, r.Score, 1.0, "scores never drop below the base tier")
	}
}

func TestSearch_TwoPhasePath(t *testing.T) {
	index, _, svc := newTestPipeline(PlannerConfig{})

	opts := domain.SearchOptions{Page: 1, Limit: 20}
	result, err := svc.Search(context.Background(), "machine learning", opts)
	require.NoError(t, err)

	assert.True(t, result.IsGeneric)
	assert.Equal(t, domain.StrategyFulltext, result.Strategy)

	// Phase one overfetches 3x the page limit from offset zero.
	require.Len(t, index.Calls, 1)
	assert.Equal(t, 60, index.Calls[0].Limit)
	assert.Equal(t, 0, index.Calls[0].Offset)
	assert.Equal(t, domain.SortRelevance, index.Calls[0].Sort)

	// Precision override: only equality, prefix, and full-text rows.
	require.Len(t, result.Results, 3)
	assert.Equal(t, "Machine Learning", result.Results[0].Term.Name)          // exact tier
	assert.Equal(t, "Machine Learning Pipeline", result.Results[1].Term.Name) // prefix tier
	assert.Equal(t, "Supervised Learning", result.Results[2].Term.Name)       // full-text tier
	assert.False(t, result.HasMore)
	assert.Equal(t, 3, result.Total)
}

func TestSearch_TwoPhaseWindowAndSentinel(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	// limit 1: window is filtered[0:2], sentinel trims to 1.
	result, err := svc.Search(context.Background(), "machine learning", domain.SearchOptions{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.True(t, result.HasMore)

	// Page 2 slices the same filtered set at the next offset.
	result, err = svc.Search(context.Background(), "machine learning", domain.SearchOptions{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Machine Learning Pipeline", result.Results[0].Term.Name)
	assert.True(t, result.HasMore)

	// Past the end of the filtered set: empty page, no more.
	result, err = svc.Search(context.Background(), "machine learning", domain.SearchOptions{Page: 9, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.False(t, result.HasMore)
}

func TestSearch_TwoPhaseMinRelevanceFilter(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{MinRelevance: 80})

	result, err := svc.Search(context.Background(), "machine learning", domain.SearchOptions{Page: 1, Limit: 20})
	require.NoError(t, err)

	// The full-text tier (25 + popularity) falls under the raised bar;
	// the total still reflects the overfetched count.
	require.Len(t, result.Results, 2)
	assert.Equal(t, 3, result.Total)
}

func TestSearch_TwoPhaseTotalCap(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{TotalCap: 2})

	result, err := svc.Search(context.Background(), "machine learning", domain.SearchOptions{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total, "two-phase total is capped regardless of corpus size")
}

func TestSearch_RaisedThresholdKeepsRankOrdering(t *testing.T) {
	// A raised threshold routes generic queries down the standard path
	// with a plain (non-boosted) fulltext plan. The exact-name term must
	// still rank first by text rank; it must not drop to the base floor
	// and fall behind partial matches.
	_, _, svc := newTestPipeline(PlannerConfig{GenericThreshold: 1000})

	result, err := svc.Search(context.Background(), "machine learning", domain.SearchOptions{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyFulltext, result.Strategy)
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "Machine Learning", result.Results[0].Term.Name)
	for i := 1; i < len(result.Results); i++ {
		assert.GreaterOrEqual(t, result.Results[i-1].Score, result.Results[i].Score)
	}
}

func TestSearch_SortModes(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	byName, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10, Sort: domain.SortName})
	require.NoError(t, err)
	require.Len(t, byName.Results, 3)
	assert.Equal(t, "BERT", byName.Results[0].Term.Name)

	byPopularity, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10, Sort: domain.SortPopularity})
	require.NoError(t, err)
	assert.Equal(t, "Transformer", byPopularity.Results[0].Term.Name)

	byRecent, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10, Sort: domain.SortRecent})
	require.NoError(t, err)
	assert.Equal(t, "Transformer", byRecent.Results[0].Term.Name)
}

func TestSearch_CategoryFilter(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	result, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10, Category: "Models"})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "BERT", result.Results[0].Term.Name)
}

func TestSearch_LongDefinitionToggle(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	excluded, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, excluded.Results[0].Term.LongDefinition)

	included, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10, IncludeLongDefinition: true})
	require.NoError(t, err)
	assert.NotEmpty(t, included.Results[0].Term.LongDefinition)
}

func TestSearch_CacheKeyCoversParameterTuple(t *testing.T) {
	_, cache, svc := newTestPipeline(PlannerConfig{})

	ctx := context.Background()
	base := domain.SearchOptions{Page: 1, Limit: 20, Sort: domain.SortRelevance}
	variants := []domain.SearchOptions{
		base,
		{Page: 2, Limit: 20, Sort: domain.SortRelevance},
		{Page: 1, Limit: 10, Sort: domain.SortRelevance},
		{Page: 1, Limit: 20, Sort: domain.SortName},
		{Page: 1, Limit: 20, Sort: domain.SortRelevance, Category: "Models"},
		{Page: 1, Limit: 20, Sort: domain.SortRelevance, IncludeLongDefinition: true},
	}
	for _, opts := range variants {
		_, err := svc.Search(ctx, "transformer", opts)
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, key := range cache.Keys {
		assert.False(t, seen[key], "duplicate cache key %q for distinct request", key)
		seen[key] = true
	}
}

func TestSearch_CacheHitSkipsRecompute(t *testing.T) {
	index, cache, svc := newTestPipeline(PlannerConfig{})

	ctx := context.Background()
	opts := domain.SearchOptions{Page: 1, Limit: 10}
	_, err := svc.Search(ctx, "transformer", opts)
	require.NoError(t, err)
	_, err = svc.Search(ctx, "transformer", opts)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.Hits)
	assert.Len(t, index.Calls, 1, "second request must be served from cache")
}

func TestSearch_Idempotent(t *testing.T) {
	// Two independent pipelines over the same corpus: identical results
	// modulo elapsed time.
	_, _, first := newTestPipeline(PlannerConfig{})
	_, _, second := newTestPipeline(PlannerConfig{})

	opts := domain.SearchOptions{Page: 1, Limit: 10}
	a, err := first.Search(context.Background(), "transformer", opts)
	require.NoError(t, err)
	b, err := second.Search(context.Background(), "transformer", opts)
	require.NoError(t, err)

	a.Took, b.Took = 0, 0
	assert.Equal(t, a, b)
}

func TestSearch_ErrorPropagation(t *testing.T) {
	index, _, svc := newTestPipeline(PlannerConfig{})
	index.SearchErr = errors.New("connection refused")

	_, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.ErrorContains(t, err, `search "transformer"`)
	assert.ErrorContains(t, err, "connection refused")
}

func TestSearch_DefaultsApplied(t *testing.T) {
	_, _, svc := newTestPipeline(PlannerConfig{})

	result, err := svc.Search(context.Background(), "transformer", domain.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
}

func TestWarm_ContinuesPastFailures(t *testing.T) {
	index, _, svc := newTestPipeline(PlannerConfig{})
	index.SearchErr = errors.New("boom")

	warmed := svc.Warm(context.Background(), []string{"ai", "transformer", "machine learning"})
	assert.Zero(t, warmed)
	assert.Len(t, index.Calls, 3, "a failed query must not abort the batch")
}

func TestWarm_CountsSuccesses(t *testing.T) {
	_, cache, svc := newTestPipeline(PlannerConfig{})

	warmed := svc.Warm(context.Background(), []string{"ai", "transformer"})
	assert.Equal(t, 2, warmed)
	assert.Len(t, cache.Keys, 2)
}
