package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// LoginRateLimiter enforces a sliding-window limit on login attempts.
// Attempts are keyed by normalized name plus client IP, so one address
// hammering a name cannot lock everyone else out of it.
type LoginRateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewLoginRateLimiter creates a limiter allowing limit attempts per
// window. Non-positive values fall back to 5 attempts per minute.
func NewLoginRateLimiter(limit int, window time.Duration) *LoginRateLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginRateLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow records an attempt for the key and reports whether it is within
// the limit. When denied, the second return value is how long until the
// oldest attempt leaves the window.
func (l *LoginRateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	if len(l.attempts) > maxTrackedKeys {
		l.sweep(cutoff)
	}

	kept := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.attempts[key] = kept
		retryAfter := kept[0].Sub(cutoff)
		return false, retryAfter
	}

	l.attempts[key] = append(kept, now)
	return true, 0
}

// maxTrackedKeys bounds the attempt map; beyond it, fully expired keys
// are swept on the next Allow call.
const maxTrackedKeys = 10000

// sweep drops keys whose attempts have all left the window. Caller
// holds l.mu.
func (l *LoginRateLimiter) sweep(cutoff time.Time) {
	for key, times := range l.attempts {
		live := false
		for _, t := range times {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.attempts, key)
		}
	}
}

// Key builds the rate limit key for a login attempt.
func (l *LoginRateLimiter) Key(name string, r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + ClientIP(r)
}

// ClientIP extracts the client address, preferring the first entry of
// X-Forwarded-For when a proxy set it.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
