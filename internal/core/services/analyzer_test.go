package services

import (
	"testing"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

func TestQueryAnalyzer_ShortQueries(t *testing.T) {
	analyzer := NewQueryAnalyzer(AnalyzerConfig{})

	for _, q := range []string{"ai", "gan", "ml", "a", ""} {
		analysis := analyzer.Analyze(q)
		if analysis.Strategy != domain.StrategyPrefix {
			t.Errorf("query %q: expected prefix strategy, got %s", q, analysis.Strategy)
		}
		if analysis.IsGeneric {
			t.Errorf("query %q: expected not generic", q)
		}
	}
}

func TestQueryAnalyzer_ShortQueryLengthCountsRunes(t *testing.T) {
	analyzer := NewQueryAnalyzer(AnalyzerConfig{})

	// Three runes but more than three bytes: still a short query.
	analysis := analyzer.Analyze("éai")
	if analysis.Strategy != domain.StrategyPrefix {
		t.Errorf("expected prefix strategy for a 3-rune query, got %s", analysis.Strategy)
	}
}

func TestQueryAnalyzer_GenericQueries(t *testing.T) {
	analyzer := NewQueryAnalyzer(AnalyzerConfig{})

	for _, q := range []string{"machine learning", "learning algorithm", "language model", "neural network"} {
		analysis := analyzer.Analyze(q)
		if analysis.Strategy != domain.StrategyFulltext {
			t.Errorf("query %q: expected fulltext strategy, got %s", q, analysis.Strategy)
		}
		if !analysis.IsGeneric {
			t.Errorf("query %q: expected generic", q)
		}
		if analysis.EstimatedMatches != DefaultAnalyzerConfig().HighEstimate {
			t.Errorf("query %q: expected high estimate, got %d", q, analysis.EstimatedMatches)
		}
	}
}

func TestQueryAnalyzer_FuzzyFallback(t *testing.T) {
	analyzer := NewQueryAnalyzer(AnalyzerConfig{})

	for _, q := range []string{"transformer", "backpropagation", "gradient descent"} {
		analysis := analyzer.Analyze(q)
		if analysis.Strategy != domain.StrategyFuzzy {
			t.Errorf("query %q: expected fuzzy strategy, got %s", q, analysis.Strategy)
		}
		if analysis.IsGeneric {
			t.Errorf("query %q: expected not generic", q)
		}
	}
}

func TestQueryAnalyzer_Normalizes(t *testing.T) {
	analyzer := NewQueryAnalyzer(AnalyzerConfig{})

	analysis := analyzer.Analyze("  Transformer  ")
	if analysis.Normalized != "transformer" {
		t.Errorf("expected trimmed lowercase form, got %q", analysis.Normalized)
	}
}

func TestQueryAnalyzer_Deterministic(t *testing.T) {
	analyzer := NewQueryAnalyzer(AnalyzerConfig{})

	first := analyzer.Analyze("machine learning")
	for i := 0; i < 10; i++ {
		if got := analyzer.Analyze("machine learning"); got != first {
			t.Fatalf("expected identical analysis, got %+v vs %+v", got, first)
		}
	}
}

func TestQueryAnalyzer_CustomDictionary(t *testing.T) {
	analyzer := NewQueryAnalyzer(AnalyzerConfig{
		GenericTerms: []string{"widget"},
	})

	if got := analyzer.Analyze("widget factory"); !got.IsGeneric {
		t.Error("expected custom dictionary term to mark query generic")
	}
	// Stock dictionary words are no longer generic.
	if got := analyzer.Analyze("machine learning"); got.IsGeneric {
		t.Error("expected stock dictionary to be replaced, not merged")
	}
}
