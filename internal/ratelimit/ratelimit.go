// Package ratelimit throttles public write endpoints per client IP using
// fixed windows.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Limiter interface {
	// Allow counts one hit for key and reports whether it is within the limit,
	// plus how long until the current window resets.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: int64(limit), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, l.window)
		ttl = p.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", k, err)
	}

	reset := ttl.Val()
	if reset < 0 {
		reset = l.window
	}
	return incr.Val() <= l.limit, reset, nil
}

// MemoryLimiter keeps counters in process. It is the fallback when no Redis
// address is configured and only holds for a single instance.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

func NewMemoryLimiter(limit int, win time.Duration) *MemoryLimiter {
	return &MemoryLimiter{limit: limit, window: win, now: time.Now, windows: map[string]*window{}}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.sweep(now)
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count <= l.limit, w.start.Add(l.window).Sub(now), nil
}

// sweep drops expired windows; callers hold mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, k)
		}
	}
}

// Middleware rejects requests over the limit with 429. Limiter failures let
// the request through so a Redis outage does not take the form down.
func Middleware(l Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		ok, reset, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("Rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			secs := int(reset.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
