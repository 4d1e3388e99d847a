// Package middleware provides the HTTP middleware stack: authentication,
// panic recovery, request logging, CORS, and per-IP rate limiting.
package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// visit is one IP's fixed-window counter.
type visit struct {
	count   int
	resetAt time.Time
}

// limiter counts requests per client over a fixed window. Expired entries
// are swept lazily on access, so no background goroutine is needed.
type limiter struct {
	mu        sync.Mutex
	visits    map[string]*visit
	max       int
	window    time.Duration
	lastSweep time.Time
}

func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > l.window {
		for k, v := range l.visits {
			if now.After(v.resetAt) {
				delete(l.visits, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visits[ip]
	if !ok || now.After(v.resetAt) {
		l.visits[ip] = &visit{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	v.count++
	return v.count <= l.max
}

// clientIP prefers the first hop of X-Forwarded-For so limits apply to the
// real client when the app sits behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return r.RemoteAddr
}

// RateLimit returns a middleware limiting each client IP to max requests
// per window.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := &limiter{
		visits: map[string]*visit{},
		max:    max,
		window: window,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"status":429,"message":"Too Many Requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
