package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Cache. Values are stored encoded so callers never
// share mutable state through the cache.
type Memory struct {
	cache *gocache.Cache
}

var _ Cache = (*Memory)(nil)

// NewMemory creates an in-process cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Memory{cache: gocache.New(ttl, 2*ttl)}
}

// GetJSON implements Cache.
func (m *Memory) GetJSON(_ context.Context, key string, out any) (bool, error) {
	value, found := m.cache.Get(key)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(value.([]byte), out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON implements Cache.
func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.cache.Set(key, b, ttl)
	return nil
}

// Delete implements Cache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}
