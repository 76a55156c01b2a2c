// Package monitoring provides Prometheus metrics for the engine: reducer
// action counters, window gauges, websocket connection tracking and HTTP
// request instrumentation.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Reducer metrics
	ActionsTotal   *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec

	// Window metrics
	WindowsOpen      prometheus.Gauge
	WindowsMinimized prometheus.Gauge
	WindowsOpened    prometheus.Counter

	// Session metrics
	SessionsSaved    prometheus.Counter
	SessionsRestored prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time
}

// New creates a metrics collector registered on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a metrics collector on a specific registry.
// Tests pass a fresh registry to avoid duplicate registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canvas_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "canvas_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),

		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canvas_actions_total",
				Help: "Total number of reducer actions by type and result",
			},
			[]string{"type", "result"},
		),
		ActionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "canvas_action_duration_seconds",
				Help:    "Reducer apply duration in seconds",
				Buckets: []float64{.00001, .0001, .001, .01, .1},
			},
			[]string{"type"},
		),

		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "canvas_windows_open",
				Help: "Number of windows currently in the store",
			},
		),
		WindowsMinimized: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "canvas_windows_minimized",
				Help: "Number of minimized windows",
			},
		),
		WindowsOpened: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "canvas_windows_opened_total",
				Help: "Total number of windows opened",
			},
		),

		SessionsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "canvas_sessions_saved_total",
				Help: "Total number of layout sessions saved",
			},
		),
		SessionsRestored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "canvas_sessions_restored_total",
				Help: "Total number of layout sessions restored",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "canvas_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canvas_ws_messages_total",
				Help: "Total number of WebSocket messages by type and direction",
			},
			[]string{"type", "direction"},
		),
	}
}

// RecordHTTPRequest records one completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAction records one reducer action application.
func (m *Metrics) RecordAction(actionType string, applied bool, duration time.Duration) {
	result := "ignored"
	if applied {
		result = "applied"
	}
	m.ActionsTotal.WithLabelValues(actionType, result).Inc()
	m.ActionDuration.WithLabelValues(actionType).Observe(duration.Seconds())
}

// SetWindowGauges updates the open/minimized window gauges.
func (m *Metrics) SetWindowGauges(open, minimized int) {
	m.WindowsOpen.Set(float64(open))
	m.WindowsMinimized.Set(float64(minimized))
}

// Uptime returns time since metrics were created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
