package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

type client struct {
	count       int
	windowStart time.Time
}

// RateLimiter caps requests per IP inside a fixed window. Used on the auth
// endpoints so password guessing burns the limit, not the lockout counter
// of somebody else's account.
type RateLimiter struct {
	clients map[string]*client
	mu      sync.Mutex
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(rl.window)
		rl.mu.Lock()
		for ip, c := range rl.clients {
			if time.Since(c.windowStart) > rl.window {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok || time.Since(c.windowStart) > rl.window {
		rl.clients[ip] = &client{count: 1, windowStart: time.Now()}
		return true
	}
	c.count++
	return c.count <= rl.limit
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For first, for reverse proxy setups
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}

// LimitFunc wraps a HandlerFunc with the rate limit.
func (rl *RateLimiter) LimitFunc(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
