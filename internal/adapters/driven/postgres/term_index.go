package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TermIndex = (*TermIndex)(nil)

// TermIndex executes retrieval plans against the terms table.
// It mirrors the plan's Match/Score reference semantics into SQL: the
// predicate and the relevance expression are generated from the same
// plan value, so they cannot diverge. Full-text slots use Postgres
// tsquery/ts_rank where the reference uses token matching.
type TermIndex struct {
	db *DB
}

// NewTermIndex creates a new TermIndex
func NewTermIndex(db *DB) *TermIndex {
	return &TermIndex{db: db}
}

// Search runs one plan against the corpus
func (s *TermIndex) Search(ctx context.Context, plan domain.RetrievalPlan, q driven.TermQuery) ([]*domain.ScoredTerm, error) {
	b := &sqlArgs{}
	predicate, relevance := planSQL(plan, b)

	longDef := "NULL"
	if q.IncludeLongDefinition {
		longDef = "t.long_definition"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `
		SELECT t.id, t.name, t.short_definition, %s,
		       t.category_id, c.name, t.view_count, t.created_at, t.updated_at,
		       %s AS relevance
		FROM terms t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE %s`, longDef, relevance, predicate)

	if q.Category != "" {
		fmt.Fprintf(&sb, " AND lower(c.name) = lower(%s)", b.add(q.Category))
	}

	fmt.Fprintf(&sb, " ORDER BY %s", orderClause(q.Sort))
	fmt.Fprintf(&sb, " LIMIT %s OFFSET %s", b.add(q.Limit), b.add(q.Offset))

	rows, err := s.db.QueryContext(ctx, sb.String(), b.args...)
	if err != nil {
		return nil, fmt.Errorf("term index query: %w", err)
	}
	defer rows.Close()

	var scored []*domain.ScoredTerm
	for rows.Next() {
		var t domain.Term
		var longDefVal, categoryID, categoryName sql.NullString
		var score float64

		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.ShortDefinition,
			&longDefVal,
			&categoryID,
			&categoryName,
			&t.ViewCount,
			&t.CreatedAt,
			&t.UpdatedAt,
			&score,
		)
		if err != nil {
			return nil, fmt.Errorf("term index scan: %w", err)
		}

		t.LongDefinition = longDefVal.String
		t.CategoryID = categoryID.String
		t.CategoryName = categoryName.String
		scored = append(scored, &domain.ScoredTerm{Term: &t, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("term index rows: %w", err)
	}

	return scored, nil
}

// planSQL generates the predicate and relevance expressions for a plan
func planSQL(plan domain.RetrievalPlan, b *sqlArgs) (predicate, relevance string) {
	query := b.add(plan.Query)
	w := plan.Weights

	exactCond := fmt.Sprintf("lower(t.name) = %s", query)
	prefixCond := fmt.Sprintf("lower(t.name) LIKE %s || '%%'", query)
	nameSubCond := fmt.Sprintf("lower(t.name) LIKE '%%' || %s || '%%'", query)
	defSubCond := fmt.Sprintf("lower(t.short_definition) LIKE '%%' || %s || '%%'", query)
	document := "to_tsvector('english', t.name || ' ' || t.short_definition)"
	ftCond := fmt.Sprintf("%s @@ plainto_tsquery('english', %s)", document, query)

	popularity := fmt.Sprintf("t.view_count * %s", b.add(w.PopularityFactor))

	if plan.Boosted {
		predicate = fmt.Sprintf("(%s OR %s OR %s)", exactCond, prefixCond, ftCond)
		relevance = fmt.Sprintf(
			"CASE WHEN %s THEN %s WHEN %s THEN %s WHEN %s THEN %s ELSE %s END + %s",
			exactCond, b.add(w.Exact),
			prefixCond, b.add(w.Prefix),
			ftCond, b.add(w.Fulltext),
			b.add(w.Base), popularity)
		return predicate, relevance
	}

	switch plan.Strategy {
	case domain.StrategyExact:
		predicate = exactCond
		relevance = fmt.Sprintf("%s + %s", b.add(w.Exact), popularity)

	case domain.StrategyPrefix:
		predicate = prefixCond
		relevance = fmt.Sprintf(
			"CASE WHEN %s THEN %s WHEN %s THEN %s ELSE %s END + %s",
			exactCond, b.add(w.Exact),
			prefixCond, b.add(w.Prefix),
			b.add(w.Base), popularity)

	case domain.StrategyFulltext:
		predicate = ftCond
		relevance = fmt.Sprintf(
			"GREATEST(ts_rank(%s, plainto_tsquery('english', %s)) * %s, %s) + %s",
			document, query, b.add(w.FulltextRankFactor), b.add(w.Base), popularity)

	default: // fuzzy
		predicate = fmt.Sprintf("(%s OR %s)", nameSubCond, defSubCond)
		relevance = fmt.Sprintf(
			"CASE WHEN %s THEN %s WHEN %s THEN %s WHEN %s THEN %s WHEN %s THEN %s ELSE %s END + %s",
			exactCond, b.add(w.Exact),
			prefixCond, b.add(w.Prefix),
			nameSubCond, b.add(w.SubstringName),
			defSubCond, b.add(w.SubstringDefinition),
			b.add(w.Base), popularity)
	}

	return predicate, relevance
}

// orderClause maps a sort mode to SQL ordering
func orderClause(mode domain.SortMode) string {
	switch mode {
	case domain.SortName:
		return "lower(t.name) ASC"
	case domain.SortPopularity:
		return "t.view_count DESC"
	case domain.SortRecent:
		return "t.updated_at DESC"
	default: // relevance
		return "relevance DESC, t.view_count DESC"
	}
}

// sqlArgs accumulates positional query arguments
type sqlArgs struct {
	args []interface{}
}

// add appends a value and returns its placeholder
func (b *sqlArgs) add(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}
