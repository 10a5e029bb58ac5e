package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared across instances through
// Redis (INCR + EXPIRE NX). If Redis is unavailable requests are let through.
type RedisRateLimiter struct {
	client   redis.Cmdable
	prefix   string
	requests int
	window   time.Duration
	now      func() time.Time
}

func NewRedisRateLimiter(client redis.Cmdable, requests int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:   client,
		prefix:   "compass:ratelimit",
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := rl.allow(r.Context(), getClientIP(r))
		if err != nil {
			slog.Warn("[RATELIMIT] redis unavailable, allowing request", "error", err)
		} else if !allowed {
			writeRateLimited(w, rl.window)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RedisRateLimiter) allow(ctx context.Context, clientID string) (bool, error) {
	bucket := rl.now().UnixNano() / int64(rl.window)
	key := fmt.Sprintf("%s:%s:%d", rl.prefix, clientID, bucket)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(rl.requests), nil
}
