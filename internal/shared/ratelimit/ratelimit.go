// Package ratelimit holds the counters behind the HTTP rate-limit middleware.
// The store is created once per process and injected; its state is not
// persisted across restarts.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Store interface {
	// Allow counts one hit for key and reports whether it is within limit
	// for the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RedisStore is a fixed-window counter shared by every api replica.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "ratelimit", now: time.Now}
}

func (s *RedisStore) WindowKey(key string, window time.Duration) string {
	start := s.now().Truncate(window).Unix()
	return fmt.Sprintf("%s:%s:%d", s.prefix, key, start)
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	k := s.WindowKey(key, window)

	n, err := s.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, k, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// MemoryStore keeps one token bucket per key in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{limiters: make(map[string]*rate.Limiter)}
}

func (s *MemoryStore) limiter(key string, limit int, window time.Duration) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit)
		s.limiters[key] = l
	}
	return l
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return false, nil
	}
	return s.limiter(key, limit, window).Allow(), nil
}

// FallbackStore asks primary first and switches to fallback for the hit
// when primary errors.
type FallbackStore struct {
	primary  Store
	fallback Store
	logger   *zap.Logger
}

func NewFallbackStore(primary, fallback Store, logger ...*zap.Logger) *FallbackStore {
	l := zap.L().Named("ratelimit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ratelimit")
	}
	return &FallbackStore{primary: primary, fallback: fallback, logger: l}
}

func (s *FallbackStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if s.primary != nil {
		ok, err := s.primary.Allow(ctx, key, limit, window)
		if err == nil {
			return ok, nil
		}
		s.logger.Warn("rate limit store unavailable, using in-memory counter", zap.Error(err))
	}
	return s.fallback.Allow(ctx, key, limit, window)
}
