package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// MockTermStore is an in-memory TermStore for testing
type MockTermStore struct {
	mu         sync.RWMutex
	terms      map[string]*domain.Term // by ID
	byName     map[string]*domain.Term // by lowercase name
	categories map[string]*domain.Category

	// SaveErr, when set, is returned by SaveBatch
	SaveErr error
}

// NewMockTermStore creates a new MockTermStore
func NewMockTermStore() *MockTermStore {
	return &MockTermStore{
		terms:      make(map[string]*domain.Term),
		byName:     make(map[string]*domain.Term),
		categories: make(map[string]*domain.Category),
	}
}

func (m *MockTermStore) Get(ctx context.Context, id string) (*domain.Term, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.terms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockTermStore) GetByName(ctx context.Context, name string) (*domain.Term, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.byName[strings.ToLower(name)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockTermStore) SaveBatch(ctx context.Context, terms []*domain.Term) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range terms {
		copied := *t
		m.terms[t.ID] = &copied
		m.byName[strings.ToLower(t.Name)] = &copied
	}
	return nil
}

func (m *MockTermStore) ContentHashes(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hashes := make(map[string]string, len(m.terms))
	for _, t := range m.terms {
		hashes[strings.ToLower(t.Name)] = t.ContentHash
	}
	return hashes, nil
}

func (m *MockTermStore) IncrementViewCount(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.terms[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.ViewCount++
	return nil
}

func (m *MockTermStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.terms), nil
}

func (m *MockTermStore) SaveCategory(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(name)
	if c, ok := m.categories[key]; ok {
		return c.ID, nil
	}
	c := &domain.Category{ID: "cat-" + key, Name: name}
	m.categories[key] = c
	return c.ID, nil
}

func (m *MockTermStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var cats []*domain.Category
	for _, c := range m.categories {
		copied := *c
		cats = append(cats, &copied)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}
