package driven

import (
	"context"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// TermStore persists glossary terms and categories
type TermStore interface {
	// Get retrieves a term by ID
	Get(ctx context.Context, id string) (*domain.Term, error)

	// GetByName retrieves a term by its exact name (case-insensitive)
	GetByName(ctx context.Context, name string) (*domain.Term, error)

	// SaveBatch upserts multiple terms in a single transaction.
	// Existing rows are matched by name; unchanged rows (same content
	// hash) are still written, change detection is the importer's job.
	SaveBatch(ctx context.Context, terms []*domain.Term) error

	// ContentHashes returns name -> content hash for all stored terms,
	// used by the importer to skip unchanged rows.
	ContentHashes(ctx context.Context) (map[string]string, error)

	// IncrementViewCount bumps the popularity counter for a term
	IncrementViewCount(ctx context.Context, id string) error

	// Count returns the total number of terms
	Count(ctx context.Context) (int, error)

	// SaveCategory upserts a category by name and returns its ID
	SaveCategory(ctx context.Context, name string) (string, error)

	// ListCategories returns all categories ordered by name
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
