package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// CatalogStore defines the interface for reference data: categories, skills and cities.
type CatalogStore interface {
	// CreateCategory returns ErrNameExists if the title is taken.
	CreateCategory(ctx context.Context, c *domain.Category) error

	// GetCategory returns ErrCategoryNotFound if the category does not exist.
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// ListCategories returns all categories ordered by title.
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	// CreateSkill returns ErrNameExists if the category already has a skill
	// with that name and ErrInvalidEntity if the category does not exist.
	CreateSkill(ctx context.Context, s *domain.Skill) error

	// GetSkill returns ErrSkillNotFound if the skill does not exist.
	GetSkill(ctx context.Context, id uuid.UUID) (*domain.Skill, error)

	// ListSkills returns skills ordered by name. A nil categoryID lists every skill.
	ListSkills(ctx context.Context, categoryID *uuid.UUID) ([]*domain.Skill, error)

	// GetCity returns ErrCityNotFound if the city does not exist.
	GetCity(ctx context.Context, id uuid.UUID) (*domain.City, error)

	// ListCities returns all cities ordered by name.
	ListCities(ctx context.Context) ([]*domain.City, error)
}
