package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// CatalogService serves categories, skills and cities. The store it wraps is
// normally a cache.CachedCatalog.
type CatalogService struct {
	catalog store.CatalogStore
	guards  *Guards
	logger  *slog.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(catalog store.CatalogStore, guards *Guards, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		catalog: catalog,
		guards:  guards,
		logger:  logger.With(slog.String("component", "catalog_service")),
	}
}

// CreateCategory adds a category with a unique title.
func (s *CatalogService) CreateCategory(ctx context.Context, title, description string) (*domain.Category, error) {
	c, err := domain.NewCategory(title, description)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrNameExists) {
			return nil, domain.Conflict("Category with title %s already exists", c.Title)
		}
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return c, nil
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	items, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// CreateSkill adds a skill to an existing category.
func (s *CatalogService) CreateSkill(ctx context.Context, categoryID uuid.UUID, name string) (*domain.Skill, error) {
	if _, err := s.guards.EnsureCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	sk, err := domain.NewSkill(name, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.CreateSkill(ctx, sk); err != nil {
		if errors.Is(err, store.ErrNameExists) {
			return nil, domain.Conflict("Skill %s already exists in category with id %s", sk.Name, categoryID)
		}
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return sk, nil
}

// ListSkills returns the skills of one category, or all skills when
// categoryID is nil.
func (s *CatalogService) ListSkills(ctx context.Context, categoryID *uuid.UUID) ([]*domain.Skill, error) {
	if categoryID != nil {
		if _, err := s.guards.EnsureCategory(ctx, *categoryID); err != nil {
			return nil, err
		}
	}
	items, err := s.catalog.ListSkills(ctx, categoryID)
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// ListCities returns every city.
func (s *CatalogService) ListCities(ctx context.Context) ([]*domain.City, error) {
	items, err := s.catalog.ListCities(ctx)
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}
