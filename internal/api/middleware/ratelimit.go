package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dnwandana/todo-api/internal/api/shared"
)

// Simple in-memory fixed-window counters keyed by client IP; counts reset at
// window boundaries. Good for single-instance setups; a multi-instance
// deployment would need a shared store behind the same interface.

type bucket struct {
	window time.Time
	count  int
}

// RateLimiter enforces a fixed number of requests per window for each key.
type RateLimiter struct {
	mu     sync.Mutex
	data   map[string]bucket
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter creates a RateLimiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		data:   make(map[string]bucket),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether a request identified by key is within its limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	win := rl.now().Truncate(rl.window)
	b, ok := rl.data[key]
	if !ok || b.window.Before(win) {
		rl.data[key] = bucket{window: win, count: 1}
		return true
	}
	if b.count >= rl.limit {
		return false
	}
	b.count++
	rl.data[key] = b
	return true
}

// LimitByIP is middleware that applies the per-IP limit and answers 429 when
// it is exceeded.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if key != "" && !rl.Allow(key) {
			shared.RespondWithErrorAndLog(w, r,
				http.StatusTooManyRequests, "Too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP normalizes the remote address to just the host, dropping the
// ephemeral port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return ""
	}
	return host
}
