package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the instruments used for monitoring the console.
// It covers API round-trips, page loads, action failures, and responses
// discarded by the last-issued-wins guard.
type Metrics struct {
	APIRequests        *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	PageLoads          *prometheus.CounterVec
	ActionFailures     *prometheus.CounterVec
	StaleResponses     prometheus.Counter
}

// NewMetrics creates a new Metrics instance registered with the provided
// Registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		APIRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffy_console_api_requests_total",
			Help: "Total API requests, labeled by operation and outcome.",
		}, []string{"operation", "outcome"}),
		APIRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffy_console_api_request_duration_seconds",
			Help:    "Duration of API round-trips.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		PageLoads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffy_console_page_loads_total",
			Help: "Total page openings, labeled by page.",
		}, []string{"page"}),
		ActionFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffy_console_action_failures_total",
			Help: "Total failed user actions (create, delete, mark).",
		}, []string{"action"}),
		StaleResponses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "staffy_console_stale_responses_total",
			Help: "Responses discarded because a newer request superseded them.",
		}),
	}

	metrics.APIRequests.WithLabelValues("list_employees", "success")
	metrics.APIRequests.WithLabelValues("list_employees", "failure")

	return metrics
}
