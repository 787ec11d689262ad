package services

import (
	"context"
	"testing"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven/mocks"
)

func seedTermStore(t *testing.T) *mocks.MockTermStore {
	t.Helper()
	store := mocks.NewMockTermStore()
	err := store.SaveBatch(context.Background(), []*domain.Term{
		{ID: "t1", Name: "Transformer", ShortDefinition: "Attention-based architecture", ViewCount: 10},
		{ID: "t2", Name: "Perceptron", ShortDefinition: "A linear classifier"},
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return store
}

func TestTermService_Get(t *testing.T) {
	store := seedTermStore(t)
	svc := NewTermService(store, discardLogger())

	term, err := svc.Get(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.Name != "Transformer" {
		t.Errorf("expected Transformer, got %s", term.Name)
	}

	// Views are recorded on read.
	again, _ := store.Get(context.Background(), "t1")
	if again.ViewCount != 11 {
		t.Errorf("expected view count 11, got %d", again.ViewCount)
	}
}

func TestTermService_GetNotFound(t *testing.T) {
	svc := NewTermService(mocks.NewMockTermStore(), discardLogger())

	_, err := svc.Get(context.Background(), "missing")
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTermService_GetByName(t *testing.T) {
	store := seedTermStore(t)
	svc := NewTermService(store, discardLogger())

	term, err := svc.GetByName(context.Background(), "perceptron")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.ID != "t2" {
		t.Errorf("expected t2, got %s", term.ID)
	}
}

func TestTermService_ListCategories(t *testing.T) {
	store := seedTermStore(t)
	_, _ = store.SaveCategory(context.Background(), "Models")
	_, _ = store.SaveCategory(context.Background(), "Foundations")
	svc := NewTermService(store, discardLogger())

	cats, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Name != "Foundations" {
		t.Errorf("expected name ordering, got %s first", cats[0].Name)
	}
}
