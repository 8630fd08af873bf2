// Package observability exposes the engine's Prometheus metrics.
package observability

import (
	"net/http"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var invalidNamespaceChars = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsActive  prometheus.Gauge

	// Engine metrics
	DetectionsTotal    *prometheus.CounterVec
	MessagesTotal      *prometheus.CounterVec
	MessageDuration    *prometheus.HistogramVec
	PreviewRows        prometheus.Histogram
	ApplyOutcomes      *prometheus.CounterVec
	ClipboardFallbacks prometheus.Counter

	// Session metrics
	SessionsOpened prometheus.Counter
	SessionsActive prometheus.Gauge
}

// NewMetrics creates a new metrics instance with all Prometheus metrics registered
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "applyforge"
	}
	// app names like "applyforge-engine" are not valid metric namespaces
	namespace = invalidNamespaceChars.ReplaceAllString(namespace, "_")

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_active",
				Help:      "Number of active HTTP requests",
			},
		),

		DetectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "portal_detections_total",
				Help:      "Portal classifications by detected portal",
			},
			[]string{"portal"},
		),
		MessagesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "Engine messages handled by type",
			},
			[]string{"type"},
		),
		MessageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "message_duration_seconds",
				Help:      "Engine message handling duration in seconds",
				Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"type"},
		),
		PreviewRows: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "preview_rows",
				Help:      "Rows produced per autofill preview",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		ApplyOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "apply_fields_total",
				Help:      "Autofill apply outcomes per field",
			},
			[]string{"outcome"},
		),
		ClipboardFallbacks: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clipboard_fallbacks_total",
				Help:      "Values copied to the clipboard instead of written to the page",
			},
		),

		SessionsOpened: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_opened_total",
				Help:      "Browser sessions opened",
			},
		),
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Browser sessions currently open",
			},
		),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveDetection records one portal classification
func (m *Metrics) ObserveDetection(portal string) {
	if m == nil {
		return
	}
	m.DetectionsTotal.WithLabelValues(portal).Inc()
}

// ObserveMessage records one handled engine message
func (m *Metrics) ObserveMessage(msgType string, seconds float64) {
	if m == nil {
		return
	}
	m.MessagesTotal.WithLabelValues(msgType).Inc()
	m.MessageDuration.WithLabelValues(msgType).Observe(seconds)
}

// ObservePreview records the size of one preview batch
func (m *Metrics) ObservePreview(rows int) {
	if m == nil {
		return
	}
	m.PreviewRows.Observe(float64(rows))
}

// ObserveApply records the outcome of one applied field
func (m *Metrics) ObserveApply(outcome string) {
	if m == nil {
		return
	}
	m.ApplyOutcomes.WithLabelValues(outcome).Inc()
	if outcome == ApplyOutcomeFallback {
		m.ClipboardFallbacks.Inc()
	}
}

// Apply outcome labels
const (
	ApplyOutcomeApplied  = "applied"
	ApplyOutcomeFallback = "fallback"
	ApplyOutcomeSkipped  = "skipped"
)
