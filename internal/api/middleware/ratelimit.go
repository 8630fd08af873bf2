package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/applyforge/applyforge/internal/domain"
	"github.com/applyforge/applyforge/pkg/httputil"
)

// visitorCap bounds the per-client limiter map
const visitorCap = 1024

// RateLimitMiddleware enforces a per-client requests-per-minute budget with
// an in-process token bucket.
type RateLimitMiddleware struct {
	perMinute int

	mu       sync.Mutex
	visitors map[string]*rate.Limiter
}

// NewRateLimitMiddleware creates a rate limiter allowing perMinute requests
// per client address
func NewRateLimitMiddleware(perMinute int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		perMinute: perMinute,
		visitors:  make(map[string]*rate.Limiter),
	}
}

// Handler returns the middleware handler
func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter(clientAddr(r)).Allow() {
			httputil.JSONError(w, http.StatusTooManyRequests, domain.ErrCodeRateLimited,
				"Rate limit exceeded", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) limiter(addr string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, ok := m.visitors[addr]; ok {
		return limiter
	}
	if len(m.visitors) >= visitorCap {
		m.visitors = make(map[string]*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(float64(m.perMinute)/60.0), m.perMinute/10+1)
	m.visitors[addr] = limiter
	return limiter
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
