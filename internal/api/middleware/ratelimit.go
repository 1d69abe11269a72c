package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sweepEvery is how many Allow calls pass between sweeps of idle clients.
const sweepEvery = 512

// RateLimiter counts requests per key over a sliding one-minute window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	limit   int
	window  time.Duration
	calls   int // Allow calls since the last sweep
}

// NewRateLimiter returns a limiter allowing limit requests per key per minute.
func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string][]time.Time),
		limit:   limit,
		window:  time.Minute,
	}
}

// Allow reports whether another request for key fits inside the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.calls++
	if rl.calls >= sweepEvery {
		rl.calls = 0
		rl.sweep(cutoff)
	}

	// Timestamps are appended in order, so everything up to the first
	// one inside the window can be dropped in a single cut.
	stamps := rl.clients[key]
	keep := 0
	for keep < len(stamps) && !stamps[keep].After(cutoff) {
		keep++
	}
	stamps = stamps[keep:]

	if len(stamps) >= rl.limit {
		rl.clients[key] = stamps
		return false
	}

	rl.clients[key] = append(stamps, now)
	return true
}

// sweep drops clients whose newest request has aged out of the window.
// Callers must hold the lock.
func (rl *RateLimiter) sweep(cutoff time.Time) {
	for key, stamps := range rl.clients {
		last := len(stamps) - 1
		if last < 0 || !stamps[last].After(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// Response shape for 429s (local to avoid an import cycle with the api package).
type rateLimitBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type rateLimitResponse struct {
	Error rateLimitBody `json:"error"`
}

func jsonRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(rateLimitResponse{
		Error: rateLimitBody{Code: "RATE_LIMITED", Message: "too many requests"},
	})
}

// RateLimitByIP returns middleware that rate limits by client IP.
func RateLimitByIP(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(getClientIP(r)) {
				jsonRateLimited(w, limiter.window)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request. Proxy headers take
// precedence over the socket address.
func getClientIP(r *http.Request) string {
	// X-Forwarded-For carries the full hop chain; the client is first.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
