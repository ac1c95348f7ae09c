package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries executed",
		},
		[]string{"query_type", "success"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type"},
	)

	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_operation_duration_seconds",
			Help:    "Duration of cache operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	BlockOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "block_operations_total",
			Help: "Total number of post block operations processed",
		},
		[]string{"operation", "success"},
	)

	ImageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_operations_total",
			Help: "Total number of image operations processed",
		},
		[]string{"operation", "success"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "block_validation_failures_total",
			Help: "Total number of block mutations rejected by validation",
		},
		[]string{"rule"},
	)

	ReclaimedImagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reclaimed_images_total",
			Help: "Total number of unreferenced uploads removed",
		},
	)

	AuthDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_decisions_total",
			Help: "Total number of route guard decisions",
		},
		[]string{"decision"},
	)

	ServiceHealth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "service_health",
			Help: "Service health status (1 = healthy, 0 = unhealthy)",
		},
	)
)
