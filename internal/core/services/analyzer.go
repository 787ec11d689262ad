package services

import (
	"strings"
	"unicode/utf8"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// AnalyzerConfig tunes query classification.
// The generic dictionary is a cheap proxy for true corpus cardinality:
// it trades a few misclassifications for avoiding a COUNT round trip
// before the real query executes.
type AnalyzerConfig struct {
	// GenericTerms are broad domain words whose presence marks a query
	// as likely to match a large, low-specificity result set.
	GenericTerms []string

	// ShortQueryLength is the max length routed to prefix matching
	ShortQueryLength int

	// ModerateEstimate is the match-count bucket for prefix and fuzzy queries
	ModerateEstimate int

	// HighEstimate is the match-count bucket for generic queries
	HighEstimate int
}

// DefaultAnalyzerConfig returns the stock AI/ML glossary classification
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		GenericTerms: []string{
			"learning", "model", "network", "neural", "data",
			"algorithm", "intelligence", "system", "machine", "deep",
		},
		ShortQueryLength: 3,
		ModerateEstimate: 50,
		HighEstimate:     500,
	}
}

// QueryAnalyzer classifies a raw query string into a retrieval strategy
// and an estimated-cardinality class. Pure and deterministic: no I/O,
// no randomness, and any input (including empty) yields a valid
// classification via the length branch.
type QueryAnalyzer struct {
	cfg AnalyzerConfig
}

// NewQueryAnalyzer creates a QueryAnalyzer with the given config.
// Zero-valued config fields fall back to defaults.
func NewQueryAnalyzer(cfg AnalyzerConfig) *QueryAnalyzer {
	defaults := DefaultAnalyzerConfig()
	if len(cfg.GenericTerms) == 0 {
		cfg.GenericTerms = defaults.GenericTerms
	}
	if cfg.ShortQueryLength <= 0 {
		cfg.ShortQueryLength = defaults.ShortQueryLength
	}
	if cfg.ModerateEstimate <= 0 {
		cfg.ModerateEstimate = defaults.ModerateEstimate
	}
	if cfg.HighEstimate <= 0 {
		cfg.HighEstimate = defaults.HighEstimate
	}
	return &QueryAnalyzer{cfg: cfg}
}

// Analyze classifies a query
func (a *QueryAnalyzer) Analyze(query string) domain.QueryAnalysis {
	normalized := strings.ToLower(strings.TrimSpace(query))

	if utf8.RuneCountInString(normalized) <= a.cfg.ShortQueryLength {
		return domain.QueryAnalysis{
			Strategy:         domain.StrategyPrefix,
			EstimatedMatches: a.cfg.ModerateEstimate,
			IsGeneric:        false,
			Normalized:       normalized,
		}
	}

	for _, generic := range a.cfg.GenericTerms {
		if strings.Contains(normalized, generic) {
			return domain.QueryAnalysis{
				Strategy:         domain.StrategyFulltext,
				EstimatedMatches: a.cfg.HighEstimate,
				IsGeneric:        true,
				Normalized:       normalized,
			}
		}
	}

	return domain.QueryAnalysis{
		Strategy:         domain.StrategyFuzzy,
		EstimatedMatches: a.cfg.ModerateEstimate,
		IsGeneric:        false,
		Normalized:       normalized,
	}
}
