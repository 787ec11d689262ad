package services

import (
	"context"
	"log/slog"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driving"
)

// Ensure termService implements TermService
var _ driving.TermService = (*termService)(nil)

// termService implements the TermService interface
type termService struct {
	store  driven.TermStore
	logger *slog.Logger
}

// NewTermService creates a new TermService
func NewTermService(store driven.TermStore, logger *slog.Logger) driving.TermService {
	if logger == nil {
		logger = slog.Default()
	}
	return &termService{store: store, logger: logger}
}

// Get retrieves a term by ID and records the view
func (s *termService) Get(ctx context.Context, id string) (*domain.Term, error) {
	term, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.recordView(ctx, term.ID)
	return term, nil
}

// GetByName retrieves a term by its exact name and records the view
func (s *termService) GetByName(ctx context.Context, name string) (*domain.Term, error) {
	term, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.recordView(ctx, term.ID)
	return term, nil
}

// ListCategories returns all categories
func (s *termService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// recordView bumps the popularity counter. View counting is
// best-effort: a failed bump never fails the read.
func (s *termService) recordView(ctx context.Context, id string) {
	if err := s.store.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("view count update failed", "term_id", id, "error", err)
	}
}
