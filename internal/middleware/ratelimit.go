package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out a token bucket per client IP: burst attempts at once,
// refilled evenly across window.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    rate.Limit
	burst    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(limit, window)

	go rl.sweepLoop()

	return rl
}

func newRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		window:   window,
	}
}

// Allow takes a token from ip's bucket and reports whether one was available.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.sweep()
	}
}

// sweep forgets IPs idle for a full window; their bucket has refilled, so a
// fresh limiter is equivalent.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, entry := range rl.limiters {
		if time.Since(entry.lastSeen) >= rl.window {
			delete(rl.limiters, ip)
		}
	}
}

// RateLimitLogin limits credential attempts per client IP. Successful
// attempts count too: the (email, date) pair is guessable. A limit of zero or
// less disables limiting. Proxy headers name the client only when trustProxy
// is set.
func RateLimitLogin(limit int, window time.Duration, trustProxy bool) func(http.HandlerFunc) http.HandlerFunc {
	if limit <= 0 || window <= 0 {
		slog.Info("login rate limiting disabled", "limit", limit, "window", window)
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	limiter := NewRateLimiter(limit, window)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r, trustProxy)
			if !limiter.Allow(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip)
				http.Error(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next(w, r)
		}
	}
}

// getClientIP returns the socket address, or the first proxy header when the
// app runs behind a trusted reverse proxy.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
