// Package cache provides the reference-data cache used in front of the
// catalog store. Two backends exist: an in-process cache for single-instance
// deployments and Redis for shared caching across instances.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/jobmatch-api/internal/config"
)

// Cache stores JSON-encoded values by key.
type Cache interface {
	// GetJSON decodes the value stored under key into out. It reports false
	// on a miss.
	GetJSON(ctx context.Context, key string, out any) (bool, error)

	// SetJSON stores value under key. A non-positive ttl uses the backend default.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds the cache selected by cfg.Driver.
func New(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (Cache, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(ttl), nil
	case "redis":
		return NewRedis(ctx, RedisOptions{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			DefaultTTL: ttl,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
