package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TermStore = (*TermStore)(nil)

// TermStore implements driven.TermStore using PostgreSQL
type TermStore struct {
	db *DB
}

// NewTermStore creates a new TermStore
func NewTermStore(db *DB) *TermStore {
	return &TermStore{db: db}
}

const termColumns = `
	t.id, t.name, t.short_definition, t.long_definition,
	t.category_id, c.name, t.view_count, t.content_hash,
	t.created_at, t.updated_at
`

// Get retrieves a term by ID
func (s *TermStore) Get(ctx context.Context, id string) (*domain.Term, error) {
	query := `
		SELECT ` + termColumns + `
		FROM terms t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1
	`

	return scanTerm(s.db.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a term by its exact name (case-insensitive)
func (s *TermStore) GetByName(ctx context.Context, name string) (*domain.Term, error) {
	query := `
		SELECT ` + termColumns + `
		FROM terms t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE lower(t.name) = lower($1)
	`

	return scanTerm(s.db.QueryRowContext(ctx, query, name))
}

// SaveBatch upserts multiple terms in a single transaction.
// Rows are matched by name; IDs and view counts of existing rows are
// preserved.
func (s *TermStore) SaveBatch(ctx context.Context, terms []*domain.Term) error {
	if len(terms) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO terms (id, name, short_definition, long_definition, category_id, content_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (name) DO UPDATE SET
				short_definition = EXCLUDED.short_definition,
				long_definition = EXCLUDED.long_definition,
				category_id = EXCLUDED.category_id,
				content_hash = EXCLUDED.content_hash,
				updated_at = EXCLUDED.updated_at
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := time.Now()
		for _, t := range terms {
			id := t.ID
			if id == "" {
				id = uuid.NewString()
			}
			createdAt := t.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}

			_, err = stmt.ExecContext(ctx,
				id,
				t.Name,
				t.ShortDefinition,
				NullString(t.LongDefinition),
				NullString(t.CategoryID),
				t.ContentHash,
				createdAt,
				now,
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// ContentHashes returns name -> content hash for all stored terms
func (s *TermStore) ContentHashes(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT lower(name), content_hash FROM terms`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var name, hash string
		if err := rows.Scan(&name, &hash); err != nil {
			return nil, err
		}
		hashes[name] = hash
	}

	return hashes, rows.Err()
}

// IncrementViewCount bumps the popularity counter for a term
func (s *TermStore) IncrementViewCount(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE terms SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the total number of terms
func (s *TermStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms`).Scan(&count)
	return count, err
}

// SaveCategory upserts a category by name and returns its ID
func (s *TermStore) SaveCategory(ctx context.Context, name string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, uuid.NewString(), name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListCategories returns all categories ordered by name
func (s *TermStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, &c)
	}

	return cats, rows.Err()
}

// scanTerm scans a single term row
func scanTerm(row *sql.Row) (*domain.Term, error) {
	var t domain.Term
	var longDef, categoryID, categoryName sql.NullString

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.ShortDefinition,
		&longDef,
		&categoryID,
		&categoryName,
		&t.ViewCount,
		&t.ContentHash,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.LongDefinition = longDef.String
	t.CategoryID = categoryID.String
	t.CategoryName = categoryName.String

	return &t, nil
}
