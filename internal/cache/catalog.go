package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/metrics"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

const (
	keyCategories = "catalog:categories"
	keyCities     = "catalog:cities"
	keySkillsAll  = "catalog:skills:all"
)

func keySkills(categoryID uuid.UUID) string { return "catalog:skills:" + categoryID.String() }
func keyCategory(id uuid.UUID) string      { return "catalog:category:" + id.String() }
func keyCity(id uuid.UUID) string          { return "catalog:city:" + id.String() }
func keySkill(id uuid.UUID) string         { return "catalog:skill:" + id.String() }

// CachedCatalog decorates a store.CatalogStore with a read-through cache.
// Writes go to the store first and then invalidate the affected list keys.
// Cache failures are logged and never fail the request.
type CachedCatalog struct {
	next   store.CatalogStore
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ store.CatalogStore = (*CachedCatalog)(nil)

// NewCachedCatalog wraps next with cache.
func NewCachedCatalog(next store.CatalogStore, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCatalog{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "catalog_cache")),
	}
}

// readThrough returns the cached value under key or loads, stores and returns it.
func readThrough[T any](ctx context.Context, c *CachedCatalog, key, metricKey string, load func() (T, error)) (T, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var cached T
	found, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		metrics.CacheRequestsTotal.WithLabelValues(metricKey, "hit").Inc()
		return cached, nil
	}
	metrics.CacheRequestsTotal.WithLabelValues(metricKey, "miss").Inc()

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := c.cache.SetJSON(ctx, key, value, c.ttl); err != nil {
		log.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return value, nil
}

func (c *CachedCatalog) invalidate(ctx context.Context, keys ...string) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	for _, key := range keys {
		if err := c.cache.Delete(ctx, key); err != nil {
			log.Warn("cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}

// CreateCategory implements store.CatalogStore.
func (c *CachedCatalog) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := c.next.CreateCategory(ctx, category); err != nil {
		return err
	}
	c.invalidate(ctx, keyCategories)
	return nil
}

// GetCategory implements store.CatalogStore.
func (c *CachedCatalog) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return readThrough(ctx, c, keyCategory(id), "category", func() (*domain.Category, error) {
		return c.next.GetCategory(ctx, id)
	})
}

// ListCategories implements store.CatalogStore.
func (c *CachedCatalog) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return readThrough(ctx, c, keyCategories, "categories", func() ([]*domain.Category, error) {
		return c.next.ListCategories(ctx)
	})
}

// CreateSkill implements store.CatalogStore.
func (c *CachedCatalog) CreateSkill(ctx context.Context, skill *domain.Skill) error {
	if err := c.next.CreateSkill(ctx, skill); err != nil {
		return err
	}
	c.invalidate(ctx, keySkillsAll, keySkills(skill.CategoryID))
	return nil
}

// GetSkill implements store.CatalogStore.
func (c *CachedCatalog) GetSkill(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	return readThrough(ctx, c, keySkill(id), "skill", func() (*domain.Skill, error) {
		return c.next.GetSkill(ctx, id)
	})
}

// ListSkills implements store.CatalogStore.
func (c *CachedCatalog) ListSkills(ctx context.Context, categoryID *uuid.UUID) ([]*domain.Skill, error) {
	key := keySkillsAll
	if categoryID != nil {
		key = keySkills(*categoryID)
	}
	return readThrough(ctx, c, key, "skills", func() ([]*domain.Skill, error) {
		return c.next.ListSkills(ctx, categoryID)
	})
}

// GetCity implements store.CatalogStore.
func (c *CachedCatalog) GetCity(ctx context.Context, id uuid.UUID) (*domain.City, error) {
	return readThrough(ctx, c, keyCity(id), "city", func() (*domain.City, error) {
		return c.next.GetCity(ctx, id)
	})
}

// ListCities implements store.CatalogStore.
func (c *CachedCatalog) ListCities(ctx context.Context) ([]*domain.City, error) {
	return readThrough(ctx, c, keyCities, "cities", func() ([]*domain.City, error) {
		return c.next.ListCities(ctx)
	})
}
