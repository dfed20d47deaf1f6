package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// PostgresCatalogStore implements the store.CatalogStore interface for
// categories, skills and cities.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL implementation of the CatalogStore interface.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

// CreateCategory implements store.CatalogStore.CreateCategory
func (s *PostgresCatalogStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, title, description) VALUES ($1, $2, $3)`,
		c.ID, c.Title, c.Description)
	if err != nil {
		log.Warn("failed to create category",
			slog.String("error", err.Error()),
			slog.String("title", c.Title))
		return MapError(err)
	}

	log.Info("category created", slog.String("category_id", c.ID.String()))
	return nil
}

// GetCategory implements store.CatalogStore.GetCategory
func (s *PostgresCatalogStore) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category",
			slog.String("error", err.Error()),
			slog.String("category_id", id.String()))
		return nil, err
	}
	return &c, nil
}

// ListCategories implements store.CatalogStore.ListCategories
func (s *PostgresCatalogStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description FROM categories ORDER BY title`)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description); err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// CreateSkill implements store.CatalogStore.CreateSkill
func (s *PostgresCatalogStore) CreateSkill(ctx context.Context, sk *domain.Skill) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO skills (id, name, category_id) VALUES ($1, $2, $3)`,
		sk.ID, sk.Name, sk.CategoryID)
	if err != nil {
		log.Warn("failed to create skill",
			slog.String("error", err.Error()),
			slog.String("name", sk.Name),
			slog.String("category_id", sk.CategoryID.String()))
		return MapError(err)
	}

	log.Info("skill created", slog.String("skill_id", sk.ID.String()))
	return nil
}

// GetSkill implements store.CatalogStore.GetSkill
func (s *PostgresCatalogStore) GetSkill(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sk domain.Skill
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category_id FROM skills WHERE id = $1`, id).
		Scan(&sk.ID, &sk.Name, &sk.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSkillNotFound
		}
		log.Error("failed to get skill",
			slog.String("error", err.Error()),
			slog.String("skill_id", id.String()))
		return nil, err
	}
	return &sk, nil
}

// ListSkills implements store.CatalogStore.ListSkills
func (s *PostgresCatalogStore) ListSkills(ctx context.Context, categoryID *uuid.UUID) ([]*domain.Skill, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var w whereBuilder
	if categoryID != nil {
		w.add("category_id = ?", *categoryID)
	}
	query := `SELECT id, name, category_id FROM skills ` + w.clause() + ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		log.Error("failed to list skills", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	skills := []*domain.Skill{}
	for rows.Next() {
		var sk domain.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.CategoryID); err != nil {
			log.Error("failed to scan skill row", slog.String("error", err.Error()))
			return nil, err
		}
		skills = append(skills, &sk)
	}
	return skills, rows.Err()
}

// GetCity implements store.CatalogStore.GetCity
func (s *PostgresCatalogStore) GetCity(ctx context.Context, id uuid.UUID) (*domain.City, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.City
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM cities WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCityNotFound
		}
		log.Error("failed to get city",
			slog.String("error", err.Error()),
			slog.String("city_id", id.String()))
		return nil, err
	}
	return &c, nil
}

// ListCities implements store.CatalogStore.ListCities
func (s *PostgresCatalogStore) ListCities(ctx context.Context) ([]*domain.City, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM cities ORDER BY name`)
	if err != nil {
		log.Error("failed to list cities", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	cities := []*domain.City{}
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			log.Error("failed to scan city row", slog.String("error", err.Error()))
			return nil, err
		}
		cities = append(cities, &c)
	}
	return cities, rows.Err()
}
