package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct{ c *redis.Client }

func New(addr, password string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

// Get unmarshals the cached value into dst. The boolean reports a hit;
// a miss is not an error.
func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.c.Set(ctx, key, b, ttl).Err()
}

func (r *Cache) Del(ctx context.Context, keys ...string) error {
	return r.c.Del(ctx, keys...).Err()
}

func (r *Cache) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

// RateLimiter is a fixed-window counter keyed per client. Used on the auth
// endpoints to slow down credential stuffing.
type RateLimiter struct {
	c        *redis.Client
	requests int
	window   time.Duration
}

func NewRateLimiter(cache *Cache, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{c: cache.c, requests: requests, window: window}
}

// Allow reports whether the key may proceed. Fails open on Redis errors so
// an unavailable Redis never locks users out.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	window := time.Now().Unix() / int64(rl.window.Seconds())
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, window)

	pipe := rl.c.TxPipeline()
	count := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}
	return count.Val() <= int64(rl.requests)
}
