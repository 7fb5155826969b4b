// Package fetchmetrics holds the Prometheus collectors for dashboard fetches
// and mounted views. Collectors register on the default registry, which is
// what GET /metrics serves.
package fetchmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modeldash",
		Name:      "fetches_total",
		Help:      "Model payload fetches by outcome (ok, status, malformed, network).",
	}, []string{"outcome"})

	discarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modeldash",
		Name:      "fetches_discarded_total",
		Help:      "Fetch results dropped because a newer fetch had already resolved.",
	})

	duration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "modeldash",
		Name:      "fetch_duration_seconds",
		Help:      "Time from issuing a models request to its resolution.",
		Buckets:   prometheus.DefBuckets,
	})

	views = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "modeldash",
		Name:      "views_active",
		Help:      "Dashboard views currently held in memory.",
	})
)

// ObserveFetch records one resolved fetch.
func ObserveFetch(outcome string, elapsed time.Duration) {
	fetches.WithLabelValues(outcome).Inc()
	duration.Observe(elapsed.Seconds())
}

// ObserveDiscard records a stale fetch result that was not applied.
func ObserveDiscard() {
	discarded.Inc()
}

// SetActiveViews records the number of mounted views.
func SetActiveViews(n int) {
	views.Set(float64(n))
}
