package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "ultracare_admin_"

	resultSuccess      = "success"
	resultError        = "error"
	resultUnauthorized = "unauthorized"
	resultCancelled    = "cancelled"

	outcomeReady         = "ready"
	outcomeError         = "error"
	outcomeLoginRedirect = "login_redirect"
)

var (
	registerOnce sync.Once

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec

	pageLoads       *prometheus.CounterVec
	pageLoadLatency *prometheus.HistogramVec

	mutationsTotal *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers dashboard metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		upstreamRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upstream_requests_total",
				Help: "Total UltraCare API requests by endpoint and result",
			},
			[]string{"endpoint", "result"},
		)
		upstreamLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "upstream_latency_seconds",
				Help:    "UltraCare API latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		)

		pageLoads = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "page_loads_total",
				Help: "Total page loads by page and outcome",
			},
			[]string{"page", "outcome"},
		)
		pageLoadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "page_load_latency_seconds",
				Help:    "Page fetch, normalize and derive latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"page"},
		)

		mutationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "mutations_total",
				Help: "Total operator mutations by action and result",
			},
			[]string{"action", "result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total table exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Table export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)

		prometheus.MustRegister(
			upstreamRequests,
			upstreamLatency,
			pageLoads,
			pageLoadLatency,
			mutationsTotal,
			exportTotal,
			exportLatency,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records one API call.
func ObserveUpstream(endpoint, result string, duration time.Duration) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if upstreamRequests != nil {
		upstreamRequests.WithLabelValues(endpoint, result).Inc()
	}
	if upstreamLatency != nil {
		upstreamLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
	}
}

// ObservePageLoad records the terminal state of one controller load.
func ObservePageLoad(page, outcome string, duration time.Duration) {
	if page == "" {
		page = "unknown"
	}
	if outcome == "" {
		outcome = outcomeReady
	}
	if pageLoads != nil {
		pageLoads.WithLabelValues(page, outcome).Inc()
	}
	if pageLoadLatency != nil {
		pageLoadLatency.WithLabelValues(page).Observe(duration.Seconds())
	}
}

// IncMutation counts a status toggle or subscription update.
func IncMutation(action, result string) {
	if action == "" {
		action = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if mutationsTotal != nil {
		mutationsTotal.WithLabelValues(action, result).Inc()
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess      = resultSuccess
	ResultError        = resultError
	ResultUnauthorized = resultUnauthorized
	ResultCancelled    = resultCancelled

	OutcomeReady         = outcomeReady
	OutcomeError         = outcomeError
	OutcomeLoginRedirect = outcomeLoginRedirect
)
