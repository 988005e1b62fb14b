// AngelaMos | 2026
// middleware_test.go

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/config"
	"github.com/carterperez-dev/cms-blog/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// unreachableRedis forces every limiter onto its in-process fallback.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"bearer  abc ", "abc"},
		{"Basic xyz", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, middleware.ExtractToken(r), tt.header)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestCORSPreflight(t *testing.T) {
	h := middleware.CORS(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})(okHandler)

	r := httptest.NewRequest(http.MethodOptions, "/v1/posts", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	r = httptest.NewRequest(http.MethodOptions, "/v1/posts", nil)
	r.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	middleware.SecurityHeaders(true)(okHandler).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiterFallsBackWhenRedisIsDown(t *testing.T) {
	rl := middleware.NewRateLimiter(unreachableRedis(t), middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(2, 2),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	})
	h := rl.Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		r.RemoteAddr = "10.0.0.7:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRoleRateLimiterUsesLiveRole(t *testing.T) {
	tiers := map[string]middleware.TierConfig{
		"user":  {RequestsPerMinute: 1, BurstSize: 1},
		"admin": {RequestsPerMinute: 100, BurstSize: 100},
	}
	h := middleware.RoleRateLimiter(unreachableRedis(t), tiers)(okHandler)

	send := func(id, role string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/v1/posts", nil)
		r = r.WithContext(middleware.WithIdentity(r.Context(), id, role))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	require.Equal(t, http.StatusOK, send("u1", "user").Code)
	assert.Equal(t, http.StatusTooManyRequests, send("u1", "user").Code)

	w := send("a1", "admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Header().Get("X-RateLimit-Tier"))
}
