package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func limitedEngine(rdb *redis.Client, max int, allow AllowFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP(), ErrorHandler(nil))
	r.GET("/contact", RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.Header.Set("X-Forwarded-For", ip)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAfterMax(t *testing.T) {
	mr, rdb := newRedis(t)
	r := limitedEngine(rdb, 2, nil)

	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.1").Code)
	w := hit(r, "203.0.113.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit(r, "203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Too many requests")

	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.2").Code, "other clients are unaffected")

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.1").Code, "window resets")
}

func TestRateLimitKeysByRouteAndIP(t *testing.T) {
	mr, rdb := newRedis(t)
	r := limitedEngine(rdb, 5, nil)

	hit(r, "203.0.113.1")
	v, err := mr.Get("rl:path:/contact:ip:203.0.113.1")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestRateLimitAllowBypass(t *testing.T) {
	_, rdb := newRedis(t)
	r := limitedEngine(rdb, 1, AllowPrivateIP())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.7").Code)
	}
	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "203.0.113.1").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	r := limitedEngine(rdb, 1, nil)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "203.0.113.1").Code)
	}
}

func TestRateLimitNilRedisIsNoop(t *testing.T) {
	r := limitedEngine(nil, 1, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "203.0.113.1").Code)
	}
}
