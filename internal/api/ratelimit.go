package api

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// ipRateLimiter throttles credential endpoints per client IP.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newIPRateLimiter() *ipRateLimiter {
	return &ipRateLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (l *ipRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[ip]
	if !ok {
		// 10 attempts per minute with a small burst
		lim = rate.NewLimiter(rate.Limit(10.0/60.0), 5)
		l.limiters[ip] = lim
	}
	return lim
}

// rlAuth wraps login/signup handlers with the per-IP limiter.
func (s *Server) rlAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiter.limiter(ip).Allow() {
			s.respondError(w, http.StatusTooManyRequests, "too many attempts, slow down")
			return
		}
		next(w, r)
	}
}
