package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// StorageOperations counts backend calls. result is ok, not_found,
	// unavailable, drift or error.
	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "Storage operations by resource, backend and result.",
		},
		[]string{"resource", "backend", "op", "result"},
	)

	StorageFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_fallbacks_total",
			Help: "Requests served by the file store after the remote store was unavailable.",
		},
		[]string{"resource", "op"},
	)

	FeaturedCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featured_cache_requests_total",
			Help: "Featured tours cache lookups by result (hit or miss).",
		},
		[]string{"result"},
	)
)
