package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiterSlidingWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewLoginRateLimiter(3, time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("alkibiades|1.2.3.4")
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
	}

	allowed, retryAfter := limiter.Allow("alkibiades|1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)

	// A different key is unaffected.
	allowed, _ = limiter.Allow("socrates|1.2.3.4")
	assert.True(t, allowed)

	// Partway through the window the key is still blocked, but the
	// retry hint shrinks as the oldest attempt ages.
	now = now.Add(30 * time.Second)
	allowed, retryAfter = limiter.Allow("alkibiades|1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 30*time.Second, retryAfter)

	// Once the original attempts leave the window the key recovers.
	now = now.Add(31 * time.Second)
	allowed, _ = limiter.Allow("alkibiades|1.2.3.4")
	assert.True(t, allowed)
}

func TestLoginRateLimiterDefaults(t *testing.T) {
	t.Parallel()

	limiter := NewLoginRateLimiter(0, 0)
	assert.Equal(t, 5, limiter.limit)
	assert.Equal(t, time.Minute, limiter.window)
}

func TestLoginRateLimiterKey(t *testing.T) {
	t.Parallel()

	limiter := NewLoginRateLimiter(5, time.Minute)

	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.7:51234"

	// The name is normalized so casing and whitespace cannot dodge the limit.
	assert.Equal(t, "alkibiades|10.0.0.7", limiter.Key("  Alkibiades ", req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "alkibiades|203.0.113.9", limiter.Key("alkibiades", req))
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.0.2.1:8080",
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.1",
			want:       "192.0.2.1",
		},
		{
			name:       "single forwarded entry",
			remoteAddr: "10.0.0.1:1234",
			forwarded:  "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "forwarded chain uses first hop",
			remoteAddr: "10.0.0.1:1234",
			forwarded:  "203.0.113.9, 198.51.100.2, 10.0.0.1",
			want:       "203.0.113.9",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			assert.Equal(t, tc.want, ClientIP(req))
		})
	}
}
