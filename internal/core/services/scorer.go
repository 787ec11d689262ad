package services

import (
	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// StrategyScorer builds the retrieval plan for a classified query.
// The plan carries both the matching predicate and the relevance
// formula, so the two cannot diverge for a request.
type StrategyScorer struct {
	// genericThreshold is the estimated-match count above which a
	// generic query switches to the precision override: the permissive
	// predicate would return an unranked flood of weakly-relevant rows,
	// so recall is deliberately traded for precision.
	genericThreshold int
}

// NewStrategyScorer creates a StrategyScorer.
// threshold <= 0 falls back to the planner default.
func NewStrategyScorer(genericThreshold int) *StrategyScorer {
	if genericThreshold <= 0 {
		genericThreshold = DefaultPlannerConfig().GenericThreshold
	}
	return &StrategyScorer{genericThreshold: genericThreshold}
}

// BuildPlan constructs the retrieval plan for an analyzed query
func (s *StrategyScorer) BuildPlan(analysis domain.QueryAnalysis) domain.RetrievalPlan {
	plan := domain.RetrievalPlan{
		Query:            analysis.Normalized,
		Strategy:         analysis.Strategy,
		IsGeneric:        analysis.IsGeneric,
		EstimatedMatches: analysis.EstimatedMatches,
	}

	if analysis.IsGeneric && analysis.EstimatedMatches > s.genericThreshold {
		plan.Boosted = true
		plan.Weights = domain.ScoreWeights{
			Exact:            100,
			Prefix:           50,
			Fulltext:         25,
			Base:             1,
			PopularityFactor: 0.1,
		}
		return plan
	}

	switch analysis.Strategy {
	case domain.StrategyFulltext:
		plan.Weights = domain.ScoreWeights{
			Base:               1,
			FulltextRankFactor: 10,
			PopularityFactor:   0.01,
		}
	case domain.StrategyPrefix, domain.StrategyExact:
		plan.Weights = domain.ScoreWeights{
			Exact:            10,
			Prefix:           8,
			Base:             1,
			PopularityFactor: 0.01,
		}
	default: // fuzzy
		plan.Weights = domain.ScoreWeights{
			Exact:               10,
			Prefix:              8,
			SubstringName:       6,
			SubstringDefinition: 4,
			Base:                1,
			PopularityFactor:    0.01,
		}
	}

	return plan
}
