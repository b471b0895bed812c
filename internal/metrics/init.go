package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "novelcore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "novelcore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

func (r *Registry) initSearchMetrics() {
	r.SearchRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "novelcore_search_requests_total",
			Help: "Total number of search requests",
		},
		[]string{"status"},
	)

	r.SearchResults = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "novelcore_search_results",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
	)
}

func (r *Registry) initIndexMetrics() {
	r.IndexWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "novelcore_index_writes_total",
			Help: "Total number of search index writes",
		},
		[]string{"entity_type", "op", "status"},
	)

	r.IndexRebuilds = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "novelcore_index_rebuilds_total",
			Help: "Total number of full index rebuilds for a novel",
		},
		[]string{"status"},
	)
}

func (r *Registry) initSyncMetrics() {
	r.SyncCyclesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "novelcore_sync_cycles_total",
			Help: "Total number of sync cycles",
		},
		[]string{"op", "status"},
	)

	r.SyncDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "novelcore_sync_duration_seconds",
			Help:    "Sync cycle duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"op"},
	)

	r.SyncCursor = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "novelcore_sync_cursor",
			Help: "Current sync cursor in unix milliseconds",
		},
	)
}
