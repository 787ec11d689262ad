package domain

import "time"

// Strategy is the retrieval/matching mode chosen for a query.
// It is selected once per request and never re-evaluated mid-pipeline.
type Strategy string

const (
	StrategyExact    Strategy = "exact"
	StrategyPrefix   Strategy = "prefix"
	StrategyFulltext Strategy = "fulltext"
	StrategyFuzzy    Strategy = "fuzzy"
)

// SortMode determines result ordering
type SortMode string

const (
	SortRelevance  SortMode = "relevance"  // score desc, view count tiebreak (default)
	SortName       SortMode = "name"       // name asc
	SortPopularity SortMode = "popularity" // view count desc
	SortRecent     SortMode = "recent"     // updated_at desc
)

// Valid reports whether the sort mode is one of the supported values.
func (m SortMode) Valid() bool {
	switch m {
	case SortRelevance, SortName, SortPopularity, SortRecent:
		return true
	}
	return false
}

// QueryAnalysis is the classification of a raw query string.
// EstimatedMatches is a heuristic bucket, not a measured cardinality.
type QueryAnalysis struct {
	Strategy         Strategy `json:"strategy"`
	EstimatedMatches int      `json:"estimated_matches"`
	IsGeneric        bool     `json:"is_generic"`
	Normalized       string   `json:"normalized"`
}

// SearchOptions configures a search request
type SearchOptions struct {
	Page                  int      `json:"page"`
	Limit                 int      `json:"limit"`
	Category              string   `json:"category,omitempty"`
	Sort                  SortMode `json:"sort"`
	IncludeLongDefinition bool     `json:"include_long_definition"`
}

// DefaultSearchOptions returns sensible defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Page:  1,
		Limit: 20,
		Sort:  SortRelevance,
	}
}

// Normalize clamps paging values into their valid ranges and applies defaults.
func (o *SearchOptions) Normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if !o.Sort.Valid() {
		o.Sort = SortRelevance
	}
}

// ScoredTerm is a term plus its computed relevance score.
// Scores are always >= 1 so relevance ordering is well-defined.
type ScoredTerm struct {
	Term  *Term   `json:"term"`
	Score float64 `json:"score"`
}

// SearchResult represents the outcome of one search request.
// Total is an estimate on both execution paths: a running lower bound for
// standard pagination, a capped upper bound for the two-phase path. Computing
// an exact count would reintroduce the cost the planner exists to avoid.
type SearchResult struct {
	Query      string        `json:"query"`
	Results    []*ScoredTerm `json:"results"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Took       time.Duration `json:"took" swaggertype:"integer" example:"1500000"`
	Strategy   Strategy      `json:"strategy"`
	IsGeneric  bool          `json:"is_generic"`
	HasMore    bool          `json:"has_more"`
}
