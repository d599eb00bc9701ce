package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
)

// MemoryBackend is an in-process backend with per-entry expiry, used when Redis is not configured.
type MemoryBackend struct {
	cache *collection.Cache
}

// NewMemoryBackend creates a backend holding at most limit entries (0 means unbounded).
func NewMemoryBackend(limit int) (*MemoryBackend, error) {
	opts := []collection.CacheOption{collection.WithName("mltrading")}
	if limit > 0 {
		opts = append(opts, collection.WithLimit(limit))
	}
	// The default expiry is only a fallback; every write passes its own TTL.
	c, err := collection.NewCache(time.Hour, opts...)
	if err != nil {
		return nil, fmt.Errorf("cache: create memory backend: %w", err)
	}
	return &MemoryBackend{cache: c}, nil
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	payload, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("cache: unexpected value type %T for key %s", v, key)
	}
	return append([]byte(nil), payload...), nil
}

func (m *MemoryBackend) SetWithExpire(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	m.cache.SetWithExpire(key, append([]byte(nil), payload...), ttl)
	return nil
}

func (m *MemoryBackend) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.cache.Del(key)
	}
	return nil
}
