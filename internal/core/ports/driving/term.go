package driving

import (
	"context"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// TermService is the read surface for individual glossary terms
type TermService interface {
	// Get retrieves a term by ID and records the view
	Get(ctx context.Context, id string) (*domain.Term, error)

	// GetByName retrieves a term by its exact name and records the view
	GetByName(ctx context.Context, name string) (*domain.Term, error)

	// ListCategories returns all categories
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
