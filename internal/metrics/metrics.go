package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors for the sync core. Registered on the default registry and
// exported by the dashboard's /metrics endpoint.
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "espejo_api_requests_total",
		Help: "Outbound API requests by method and outcome.",
	}, []string{"method", "outcome"})

	RetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "espejo_api_retries_total",
		Help: "Outbound API request attempts beyond the first.",
	})

	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "espejo_mirror_refresh_total",
		Help: "Mirror refresh attempts by outcome.",
	}, []string{"outcome"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "espejo_mirror_refresh_duration_seconds",
		Help:    "Duration of mirror refresh calls.",
		Buckets: prometheus.DefBuckets,
	})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "espejo_notifications_total",
		Help: "Notifications enqueued by level.",
	}, []string{"level"})
)
