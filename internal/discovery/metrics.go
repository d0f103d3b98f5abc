// internal/discovery/metrics.go

package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	interactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_interactions_total",
			Help: "Total number of recorded interactions",
		},
		[]string{"type"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_matches_total",
			Help: "Total number of matches created",
		},
	)

	feedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_feed_requests_total",
			Help: "Total number of feed requests by relaxation step",
		},
		[]string{"step"},
	)

	feedPageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_feed_page_size",
			Help:    "Number of candidates returned per feed page",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func ObserveInteraction(interactionType string) {
	interactionsTotal.WithLabelValues(interactionType).Inc()
}

func ObserveMatch() {
	matchesTotal.Inc()
}

func RecordFeedRequest(step string, returned int) {
	if step == "" {
		step = "strict"
	}
	feedRequestsTotal.WithLabelValues(step).Inc()
	feedPageSize.Observe(float64(returned))
}
