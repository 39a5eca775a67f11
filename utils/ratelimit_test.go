package utils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func throttledRouter(t *testing.T, mw gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/login", mw, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

// postFrom sends n POSTs from one socket address, each with its own
// X-Forwarded-For value, and counts the ones let through.
func postFrom(r http.Handler, n int) int {
	allowed := 0
	for i := range n {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set("X-Forwarded-For", "203.0.113."+strconv.Itoa(i%250))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusNoContent {
			allowed++
		}
	}
	return allowed
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := throttledRouter(t, NewRateLimiter(5).Middleware(discard()))

	assert.Equal(t, 5, postFrom(r, 50))
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	l := NewRateLimiter(2)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := range 100 {
		l.allow("10.0.0." + strconv.Itoa(i))
	}
	assert.Len(t, l.visitors, 100)

	now = now.Add(2 * time.Minute)
	assert.True(t, l.allow("10.0.0.200"))
	assert.Len(t, l.visitors, 1)
}

func TestRateLimiter_RefillsAfterIdle(t *testing.T) {
	l := NewRateLimiter(1)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	now = now.Add(time.Minute)
	assert.True(t, l.allow("a"))
}

func TestRedisRateLimiter_SharedFixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := throttledRouter(t, NewRedisRateLimiter(rdb, 3, "barbershop:login").Middleware(discard()))

	assert.Equal(t, 3, postFrom(r, 20))
	assert.True(t, mr.Exists("barbershop:login:198.51.100.7"))

	mr.FastForward(time.Minute)
	assert.Equal(t, 3, postFrom(r, 5))
}

func TestRedisRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r := throttledRouter(t, NewRedisRateLimiter(rdb, 1, "").Middleware(discard()))

	assert.Equal(t, 3, postFrom(r, 3))
}
