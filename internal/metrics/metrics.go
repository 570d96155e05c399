package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelf_api_requests_total",
			Help: "The total number of product listing requests by outcome",
		},
		[]string{"outcome"},
	)

	APIRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shelf_api_request_duration_seconds",
			Help:    "Duration of product listing requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchesCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shelf_searches_committed_total",
			Help: "Search queries committed after debouncing",
		},
	)

	PagesLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shelf_pages_loaded_total",
			Help: "Product pages appended to the list",
		},
	)

	FetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelf_fetch_failures_total",
			Help: "Rejected fetches by error kind",
		},
		[]string{"kind"},
	)
)
