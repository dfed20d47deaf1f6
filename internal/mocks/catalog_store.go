package mocks

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/samber/lo"
)

// CatalogStore implements store.CatalogStore on a MemoryDB. Reads counts
// the calls that reached the store, which lets cache tests observe hits.
type CatalogStore struct {
	db    *MemoryDB
	Reads atomic.Int64
}

var _ store.CatalogStore = (*CatalogStore)(nil)

// CreateCategory implements store.CatalogStore.
func (s *CatalogStore) CreateCategory(_ context.Context, c *domain.Category) error {
	defer s.db.exclusive(false)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("CatalogStore.CreateCategory"); err != nil {
		return err
	}
	if lo.SomeBy(lo.Values(s.db.data.categories), func(existing domain.Category) bool {
		return existing.Title == c.Title
	}) {
		return store.ErrNameExists
	}
	s.db.data.categories[c.ID] = *c
	return nil
}

// GetCategory implements store.CatalogStore.
func (s *CatalogStore) GetCategory(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	s.Reads.Add(1)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := s.db.data.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return &c, nil
}

// ListCategories implements store.CatalogStore.
func (s *CatalogStore) ListCategories(_ context.Context) ([]*domain.Category, error) {
	s.Reads.Add(1)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("CatalogStore.ListCategories"); err != nil {
		return nil, err
	}
	items := lo.Values(s.db.data.categories)
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return ptrs(items), nil
}

// CreateSkill implements store.CatalogStore.
func (s *CatalogStore) CreateSkill(_ context.Context, sk *domain.Skill) error {
	defer s.db.exclusive(false)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.data.categories[sk.CategoryID]; !ok {
		return store.ErrInvalidEntity
	}
	if lo.SomeBy(lo.Values(s.db.data.skills), func(existing domain.Skill) bool {
		return existing.CategoryID == sk.CategoryID && existing.Name == sk.Name
	}) {
		return store.ErrNameExists
	}
	s.db.data.skills[sk.ID] = *sk
	return nil
}

// GetSkill implements store.CatalogStore.
func (s *CatalogStore) GetSkill(_ context.Context, id uuid.UUID) (*domain.Skill, error) {
	s.Reads.Add(1)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	sk, ok := s.db.data.skills[id]
	if !ok {
		return nil, store.ErrSkillNotFound
	}
	return &sk, nil
}

// ListSkills implements store.CatalogStore.
func (s *CatalogStore) ListSkills(_ context.Context, categoryID *uuid.UUID) ([]*domain.Skill, error) {
	s.Reads.Add(1)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.Filter(lo.Values(s.db.data.skills), func(sk domain.Skill, _ int) bool {
		return categoryID == nil || sk.CategoryID == *categoryID
	})
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return ptrs(items), nil
}

// GetCity implements store.CatalogStore.
func (s *CatalogStore) GetCity(_ context.Context, id uuid.UUID) (*domain.City, error) {
	s.Reads.Add(1)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := s.db.data.cities[id]
	if !ok {
		return nil, store.ErrCityNotFound
	}
	return &c, nil
}

// ListCities implements store.CatalogStore.
func (s *CatalogStore) ListCities(_ context.Context) ([]*domain.City, error) {
	s.Reads.Add(1)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.Values(s.db.data.cities)
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return ptrs(items), nil
}
