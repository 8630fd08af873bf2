package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/applyforge/applyforge/internal/observability"
)

// MetricsMiddleware records request counts and latencies
type MetricsMiddleware struct {
	metrics *observability.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(metrics *observability.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Handler returns the middleware handler
func (m *MetricsMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		m.metrics.HTTPRequestsActive.Inc()
		next.ServeHTTP(rw, r)
		m.metrics.HTTPRequestsActive.Dec()

		m.metrics.HTTPRequestsTotal.
			WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode)).
			Inc()
		m.metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, r.URL.Path).
			Observe(time.Since(start).Seconds())
	})
}
