package cache

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// ErrMiss is returned by backends when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Backend is a byte-oriented TTL key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithExpire(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Store wraps a Backend so that cache failures never reach callers:
// errors are logged and degrade to a miss or a no-op. A nil Store is a permanent miss.
type Store struct {
	backend Backend
	name    string
}

// NewStore wraps backend. name is used in log lines only.
func NewStore(name string, backend Backend) *Store {
	return &Store{backend: backend, name: name}
}

// Name identifies the backend in logs and summaries.
func (s *Store) Name() string {
	if s == nil {
		return "disabled"
	}
	return s.name
}

// Get returns the payload stored under key. Missing, expired and failed reads all report false.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if s == nil || s.backend == nil {
		return nil, false
	}
	payload, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			logx.WithContext(ctx).Errorf("cache(%s): get key=%s err=%v", s.name, key, err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores payload under key for ttl and reports whether the write succeeded.
func (s *Store) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) bool {
	if s == nil || s.backend == nil || ttl <= 0 {
		return false
	}
	if err := s.backend.SetWithExpire(ctx, key, payload, ttl); err != nil {
		logx.WithContext(ctx).Errorf("cache(%s): set key=%s err=%v", s.name, key, err)
		return false
	}
	return true
}

// Delete removes keys and reports whether the backend accepted the request.
func (s *Store) Delete(ctx context.Context, keys ...string) bool {
	if s == nil || s.backend == nil || len(keys) == 0 {
		return false
	}
	if err := s.backend.Del(ctx, keys...); err != nil {
		logx.WithContext(ctx).Errorf("cache(%s): delete keys=%v err=%v", s.name, keys, err)
		return false
	}
	return true
}
