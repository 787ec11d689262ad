package domain

import (
	"math"
	"strings"
)

// ScoreWeights parameterises the relevance formula for one strategy.
// The tiers are evaluated in descending priority; the first matching tier
// wins. Base is the floor for any row that cleared the predicate, which
// keeps every score >= 1.
type ScoreWeights struct {
	Exact               float64 `json:"exact"`
	Prefix              float64 `json:"prefix"`
	Fulltext            float64 `json:"fulltext"`
	SubstringName       float64 `json:"substring_name"`
	SubstringDefinition float64 `json:"substring_definition"`
	Base                float64 `json:"base"`

	// FulltextRankFactor scales the text rank when the fulltext strategy
	// scores by rank rather than by fixed tier.
	FulltextRankFactor float64 `json:"fulltext_rank_factor"`

	// PopularityFactor scales the view-count term added to every score.
	PopularityFactor float64 `json:"popularity_factor"`
}

// RetrievalPlan binds a strategy to its matching predicate and relevance
// formula. Both derive from the same plan value, so they cannot diverge.
// The Postgres index adapter mirrors the same plan into SQL; Match and
// Score are the reference semantics and what the mocks evaluate.
type RetrievalPlan struct {
	Query            string       `json:"query"` // trimmed, lowercased
	Strategy         Strategy     `json:"strategy"`
	Boosted          bool         `json:"boosted"` // high-cardinality precision override
	IsGeneric        bool         `json:"is_generic"`
	EstimatedMatches int          `json:"estimated_matches"`
	Weights          ScoreWeights `json:"weights"`
}

// Match reports whether a term satisfies the plan's predicate.
func (p RetrievalPlan) Match(t *Term) bool {
	name := strings.ToLower(t.Name)
	def := strings.ToLower(t.ShortDefinition)

	if p.Boosted {
		// Precision override: equality, prefix, or full-text only.
		// Substring recall is deliberately sacrificed for generic queries.
		return name == p.Query ||
			strings.HasPrefix(name, p.Query) ||
			fulltextMatch(p.Query, name+" "+def)
	}

	switch p.Strategy {
	case StrategyExact:
		return name == p.Query
	case StrategyPrefix:
		return strings.HasPrefix(name, p.Query)
	case StrategyFulltext:
		return fulltextMatch(p.Query, name+" "+def)
	default: // fuzzy
		return strings.Contains(name, p.Query) || strings.Contains(def, p.Query)
	}
}

// Score computes the relevance of a term under this plan.
// The result is always >= Weights.Base plus a non-negative popularity term.
func (p RetrievalPlan) Score(t *Term) float64 {
	name := strings.ToLower(t.Name)
	def := strings.ToLower(t.ShortDefinition)
	w := p.Weights

	var tier float64
	switch {
	case !p.Boosted && p.Strategy == StrategyFulltext:
		// Rank-scored strategy: the exact/prefix tiers carry zero weight
		// here, so an exact-name match must score by rank, not fall
		// through to the floor.
		tier = FulltextRank(p.Query, name+" "+def) * w.FulltextRankFactor
	case name == p.Query:
		tier = w.Exact
	case strings.HasPrefix(name, p.Query):
		tier = w.Prefix
	case p.Boosted && fulltextMatch(p.Query, name+" "+def):
		tier = w.Fulltext
	case strings.Contains(name, p.Query):
		tier = w.SubstringName
	case strings.Contains(def, p.Query):
		tier = w.SubstringDefinition
	}

	return math.Max(tier, w.Base) + float64(t.ViewCount)*w.PopularityFactor
}

// FulltextRank approximates a text-search rank as the fraction of query
// tokens present in the document, in [0, 1]. The Postgres adapter uses
// ts_rank for the same slot; this is the in-process reference used by
// mocks and the two-phase quality filter.
func FulltextRank(query, text string) float64 {
	qTokens := strings.Fields(query)
	if len(qTokens) == 0 {
		return 0
	}
	docTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		docTokens[strings.Trim(tok, ".,;:()[]")] = struct{}{}
	}
	matched := 0
	for _, tok := range qTokens {
		if _, ok := docTokens[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(qTokens))
}

// fulltextMatch reports whether every query token appears as a word in the
// text, mirroring plainto_tsquery AND semantics.
func fulltextMatch(query, text string) bool {
	qTokens := strings.Fields(query)
	if len(qTokens) == 0 {
		return false
	}
	return FulltextRank(query, text) == 1
}
