package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "centerpulse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "centerpulse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "centerpulse",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Alert evaluation metrics
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "centerpulse",
			Subsystem: "alerts",
			Name:      "evaluations_total",
			Help:      "Total number of rule evaluations",
		},
		[]string{"trigger_type", "outcome"},
	)

	evaluationSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "centerpulse",
			Subsystem: "alerts",
			Name:      "sweep_duration_seconds",
			Help:      "Duration of a full evaluation sweep in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	alertsFiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "centerpulse",
			Subsystem: "alerts",
			Name:      "fired_total",
			Help:      "Total number of alerts fired",
		},
		[]string{"trigger_type", "priority"},
	)

	alertsSuppressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "centerpulse",
			Subsystem: "alerts",
			Name:      "suppressed_total",
			Help:      "Total number of alerts suppressed by the cooldown window",
		},
		[]string{"trigger_type"},
	)

	// Notification dispatch metrics
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "centerpulse",
			Subsystem: "notify",
			Name:      "dispatch_total",
			Help:      "Total number of per-channel dispatch attempts",
		},
		[]string{"channel", "result"},
	)

	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "centerpulse",
			Subsystem: "notify",
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of a per-channel dispatch in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"channel"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "centerpulse",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordEvaluation records a single rule evaluation outcome
// (fired, no_fire, error)
func RecordEvaluation(triggerType, outcome string) {
	evaluationsTotal.WithLabelValues(triggerType, outcome).Inc()
}

// RecordSweepDuration records the duration of a full evaluation sweep
func RecordSweepDuration(duration time.Duration) {
	evaluationSweepDuration.Observe(duration.Seconds())
}

// RecordAlertFired records a fired alert
func RecordAlertFired(triggerType, priority string) {
	alertsFiredTotal.WithLabelValues(triggerType, priority).Inc()
}

// RecordAlertSuppressed records an alert suppressed by the cooldown gate
func RecordAlertSuppressed(triggerType string) {
	alertsSuppressedTotal.WithLabelValues(triggerType).Inc()
}

// RecordDispatch records a per-channel dispatch attempt
// (result: success, failure, mocked)
func RecordDispatch(channel, result string, duration time.Duration) {
	dispatchTotal.WithLabelValues(channel, result).Inc()
	dispatchDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
