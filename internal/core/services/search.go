package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// PlannerConfig tunes the paginator's execution paths.
// The thresholds are operational knobs, not validated behaviour.
type PlannerConfig struct {
	// GenericThreshold is the estimated match count above which a
	// generic query takes the two-phase overfetch path
	GenericThreshold int

	// OverfetchMultiplier sizes the phase-one fetch as a multiple of
	// the page limit
	OverfetchMultiplier int

	// MinRelevance discards phase-one rows that only cleared the
	// overfetch cutoff by volume, not quality
	MinRelevance float64

	// TotalCap bounds the reported total on the two-phase path
	TotalCap int

	// CacheTTL is the lifetime of cached result snapshots
	CacheTTL time.Duration
}

// DefaultPlannerConfig returns the stock planner tuning
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		GenericThreshold:    200,
		OverfetchMultiplier: 3,
		MinRelevance:        5.0,
		TotalCap:            500,
		CacheTTL:            5 * time.Minute,
	}
}

// searchService implements the SearchService interface.
// Pipeline per request: analyze -> build plan -> paginate -> cache write.
// The service holds no per-request state and is safe for concurrent use.
type searchService struct {
	index    driven.TermIndex
	cache    driven.ResultCache
	analyzer *QueryAnalyzer
	scorer   *StrategyScorer
	cfg      PlannerConfig
	logger   *slog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	index driven.TermIndex,
	cache driven.ResultCache,
	analyzer *QueryAnalyzer,
	scorer *StrategyScorer,
	cfg PlannerConfig,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultPlannerConfig()
	if cfg.GenericThreshold <= 0 {
		cfg.GenericThreshold = defaults.GenericThreshold
	}
	if cfg.OverfetchMultiplier <= 0 {
		cfg.OverfetchMultiplier = defaults.OverfetchMultiplier
	}
	if cfg.MinRelevance <= 0 {
		cfg.MinRelevance = defaults.MinRelevance
	}
	if cfg.TotalCap <= 0 {
		cfg.TotalCap = defaults.TotalCap
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}
	return &searchService{
		index:    index,
		cache:    cache,
		analyzer: analyzer,
		scorer:   scorer,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search runs the adaptive query pipeline
func (s *searchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	opts.Normalize()

	analysis := s.analyzer.Analyze(query)
	plan := s.scorer.BuildPlan(analysis)

	key := cacheKey(analysis.Normalized, opts)
	result, err := s.cache.GetOrCompute(ctx, key, s.cfg.CacheTTL, func(ctx context.Context) (*domain.SearchResult, error) {
		return s.execute(ctx, plan, analysis, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return result, nil
}

// execute runs one uncached pipeline pass
func (s *searchService) execute(ctx context.Context, plan domain.RetrievalPlan, analysis domain.QueryAnalysis, opts domain.SearchOptions) (*domain.SearchResult, error) {
	start := time.Now()

	var (
		rows    []*domain.ScoredTerm
		total   int
		hasMore bool
		err     error
	)

	if analysis.IsGeneric && analysis.EstimatedMatches > s.cfg.GenericThreshold {
		rows, total, hasMore, err = s.twoPhase(ctx, plan, opts)
	} else {
		rows, total, hasMore, err = s.standard(ctx, plan, opts)
	}
	if err != nil {
		return nil, err
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit

	return &domain.SearchResult{
		Query:      analysis.Normalized,
		Results:    rows,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
		Took:       time.Since(start),
		Strategy:   analysis.Strategy,
		IsGeneric:  analysis.IsGeneric,
		HasMore:    hasMore,
	}, nil
}

// standard is path A: offset pagination with the limit+1 sentinel.
// The returned total is a running lower bound, not a true count; a full
// COUNT per request is exactly the cost this planner avoids.
func (s *searchService) standard(ctx context.Context, plan domain.RetrievalPlan, opts domain.SearchOptions) ([]*domain.ScoredTerm, int, bool, error) {
	offset := (opts.Page - 1) * opts.Limit

	rows, err := s.index.Search(ctx, plan, driven.TermQuery{
		Category:              opts.Category,
		Sort:                  opts.Sort,
		Limit:                 opts.Limit + 1,
		Offset:                offset,
		IncludeLongDefinition: opts.IncludeLongDefinition,
	})
	if err != nil {
		return nil, 0, false, err
	}

	hasMore := len(rows) > opts.Limit
	if hasMore {
		rows = rows[:opts.Limit]
	}

	total := offset + len(rows)
	if hasMore {
		total++
	}
	return rows, total, hasMore, nil
}

// twoPhase is path B, taken only for generic high-cardinality queries:
// overfetch a fixed multiple of the page size by relevance, drop weak
// matches, then paginate the filtered set in memory. Work per request
// stays bounded at the cost of an approximate total and a capped
// deepest reachable page.
func (s *searchService) twoPhase(ctx context.Context, plan domain.RetrievalPlan, opts domain.SearchOptions) ([]*domain.ScoredTerm, int, bool, error) {
	fetch := s.cfg.OverfetchMultiplier * opts.Limit

	rows, err := s.index.Search(ctx, plan, driven.TermQuery{
		Category:              opts.Category,
		Sort:                  domain.SortRelevance,
		Limit:                 fetch,
		Offset:                0,
		IncludeLongDefinition: opts.IncludeLongDefinition,
	})
	if err != nil {
		return nil, 0, false, err
	}

	filtered := make([]*domain.ScoredTerm, 0, len(rows))
	for _, r := range rows {
		if r.Score >= s.cfg.MinRelevance {
			filtered = append(filtered, r)
		}
	}

	offset := (opts.Page - 1) * opts.Limit
	var window []*domain.ScoredTerm
	if offset < len(filtered) {
		end := offset + opts.Limit + 1
		if end > len(filtered) {
			end = len(filtered)
		}
		window = filtered[offset:end]
	}

	hasMore := len(window) > opts.Limit
	if hasMore {
		window = window[:opts.Limit]
	}

	total := len(rows)
	if total > s.cfg.TotalCap {
		total = s.cfg.TotalCap
	}
	return window, total, hasMore, nil
}

// Warm populates the cache for a list of common queries.
// Each query is independent: a failure is logged and the batch continues.
func (s *searchService) Warm(ctx context.Context, queries []string) int {
	warmed := 0
	for _, q := range queries {
		if _, err := s.Search(ctx, q, domain.DefaultSearchOptions()); err != nil {
			s.logger.Error("cache warm failed", "query", q, "error", err)
			continue
		}
		warmed++
	}
	return warmed
}

// cacheKey builds the cache key from the full parameter tuple. Every
// parameter that affects the result must appear here, or distinct
// requests would cross-contaminate.
func cacheKey(query string, opts domain.SearchOptions) string {
	return fmt.Sprintf("search:%s:%d:%d:%s:%s:%t",
		query, opts.Page, opts.Limit, opts.Category, opts.Sort, opts.IncludeLongDefinition)
}
