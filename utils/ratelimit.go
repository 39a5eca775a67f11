package utils

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const tooManyAttempts = "Too many attempts. Please wait a minute and try again."

// RateLimiter throttles requests per client IP within one process.
// Visitors idle for longer than a full refill are dropped.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP with a burst of the same size.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idle:     time.Minute,
		now:      time.Now,
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) >= l.idle {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware keys on gin's ClientIP, so forwarded headers only count when the
// engine trusts the proxy that sent them.
func (l *RateLimiter) Middleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			rejectTooMany(c, log)
			return
		}
		c.Next()
	}
}

// RedisRateLimiter is a fixed-window limiter shared by every instance that
// talks to the same Redis.
type RedisRateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisRateLimiter(rdb *redis.Client, perMinute int, prefix string) *RedisRateLimiter {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{rdb: rdb, limit: perMinute, window: time.Minute, prefix: prefix}
}

// Middleware lets requests through when Redis fails; login stays reachable
// and the backend still rejects bad credentials.
func (l *RedisRateLimiter) Middleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := l.incr(c.Request.Context(), l.prefix+":"+c.ClientIP())
		if err != nil {
			log.Warn("redis rate limiter error", sl.Err(err))
			c.Next()
			return
		}
		if count > int64(l.limit) {
			rejectTooMany(c, log)
			return
		}
		c.Next()
	}
}

func (l *RedisRateLimiter) incr(ctx context.Context, key string) (int64, error) {
	const op = "utils.RedisRateLimiter.incr"

	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%s: unexpected script result %T", op, res)
}

func rejectTooMany(c *gin.Context, log *slog.Logger) {
	log.Warn("too many requests", slog.String("ip", c.ClientIP()), slog.String("path", c.FullPath()))
	c.String(http.StatusTooManyRequests, tooManyAttempts)
	c.Abort()
}
