package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

func TestStrategyScorer_BoostedOverride(t *testing.T) {
	scorer := NewStrategyScorer(200)

	plan := scorer.BuildPlan(domain.QueryAnalysis{
		Strategy:         domain.StrategyFulltext,
		EstimatedMatches: 500,
		IsGeneric:        true,
		Normalized:       "machine learning",
	})

	assert.True(t, plan.Boosted)
	// The reported strategy stays what the analyzer chose.
	assert.Equal(t, domain.StrategyFulltext, plan.Strategy)
	assert.Equal(t, 100.0, plan.Weights.Exact)
	assert.Equal(t, 50.0, plan.Weights.Prefix)
	assert.Equal(t, 25.0, plan.Weights.Fulltext)
	assert.Equal(t, 0.1, plan.Weights.PopularityFactor)
}

func TestStrategyScorer_GenericBelowThreshold(t *testing.T) {
	scorer := NewStrategyScorer(1000)

	plan := scorer.BuildPlan(domain.QueryAnalysis{
		Strategy:         domain.StrategyFulltext,
		EstimatedMatches: 500,
		IsGeneric:        true,
		Normalized:       "machine learning",
	})

	assert.False(t, plan.Boosted, "generic alone must not trigger the override")
	assert.Equal(t, 10.0, plan.Weights.FulltextRankFactor)
	assert.Equal(t, 0.01, plan.Weights.PopularityFactor)
}

func TestStrategyScorer_FuzzyWeights(t *testing.T) {
	scorer := NewStrategyScorer(200)

	plan := scorer.BuildPlan(domain.QueryAnalysis{
		Strategy:         domain.StrategyFuzzy,
		EstimatedMatches: 50,
		Normalized:       "transformer",
	})

	assert.Equal(t, 10.0, plan.Weights.Exact)
	assert.Equal(t, 8.0, plan.Weights.Prefix)
	assert.Equal(t, 6.0, plan.Weights.SubstringName)
	assert.Equal(t, 4.0, plan.Weights.SubstringDefinition)
	assert.Equal(t, 1.0, plan.Weights.Base)
}

func TestStrategyScorer_PrefixWeights(t *testing.T) {
	scorer := NewStrategyScorer(200)

	plan := scorer.BuildPlan(domain.QueryAnalysis{
		Strategy:         domain.StrategyPrefix,
		EstimatedMatches: 50,
		Normalized:       "ai",
	})

	assert.False(t, plan.Boosted)
	assert.Equal(t, 10.0, plan.Weights.Exact)
	assert.Equal(t, 8.0, plan.Weights.Prefix)
	assert.Zero(t, plan.Weights.SubstringName)
}

func TestStrategyScorer_PlanCarriesAnalysis(t *testing.T) {
	scorer := NewStrategyScorer(200)

	analysis := domain.QueryAnalysis{
		Strategy:         domain.StrategyFuzzy,
		EstimatedMatches: 50,
		IsGeneric:        false,
		Normalized:       "transformer",
	}
	plan := scorer.BuildPlan(analysis)

	assert.Equal(t, analysis.Normalized, plan.Query)
	assert.Equal(t, analysis.EstimatedMatches, plan.EstimatedMatches)
	assert.Equal(t, analysis.IsGeneric, plan.IsGeneric)
}
