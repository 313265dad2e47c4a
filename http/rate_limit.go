package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const clientIdleEviction = 1 * time.Hour

// RateLimiter allows up to `limit` requests per client IP within each
// window. Idle clients are evicted in the background.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*clientWindow
	stop    chan struct{}
}

type clientWindow struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientWindow),
		stop:    make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, cw := range rl.clients {
		if now.Sub(cw.lastSeen) > clientIdleEviction {
			delete(rl.clients, ip)
		}
	}
}

// Stop terminates the background eviction loop.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Allow reports whether the client may make another request now.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cw, ok := rl.clients[ip]
	if !ok || now.Sub(cw.start) >= rl.window {
		rl.clients[ip] = &clientWindow{count: 1, start: now, lastSeen: now}
		return true
	}

	cw.lastSeen = now
	if cw.count >= rl.limit {
		return false
	}
	cw.count++
	return true
}

// RateLimitMiddleware rejects requests over the per-IP limit with 429.
func RateLimitMiddleware(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
