package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gocache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/syncx"
)

var errRedisNotFound = errors.New("cache: redis not found")

// RedisBackend stores payloads through the go-zero cache layer. Payloads are kept as
// raw JSON so reads return the exact bytes that were written.
type RedisBackend struct {
	cache gocache.Cache
}

// NewRedisBackend wraps an existing go-zero cache.
func NewRedisBackend(c gocache.Cache) *RedisBackend {
	return &RedisBackend{cache: c}
}

// NewRedisBackendFromConf builds a single-node go-zero cache from conf.
func NewRedisBackendFromConf(conf redis.RedisConf) *RedisBackend {
	cluster := gocache.CacheConf{{RedisConf: conf, Weight: 100}}
	c := gocache.New(cluster, syncx.NewSingleFlight(), gocache.NewStat("mltrading"), errRedisNotFound)
	return NewRedisBackend(c)
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var raw json.RawMessage
	if err := r.cache.GetCtx(ctx, key, &raw); err != nil {
		if r.cache.IsNotFound(err) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return raw, nil
}

func (r *RedisBackend) SetWithExpire(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return r.cache.SetWithExpireCtx(ctx, key, json.RawMessage(payload), ttl)
}

func (r *RedisBackend) Del(ctx context.Context, keys ...string) error {
	return r.cache.DelCtx(ctx, keys...)
}
