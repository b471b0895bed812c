package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application. A nil *Registry is valid
// and records nothing, so components can run without metrics in tests.
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Search Metrics
	SearchRequestsTotal *prometheus.CounterVec
	SearchResults       prometheus.Histogram

	// Index Metrics
	IndexWritesTotal *prometheus.CounterVec
	IndexRebuilds    *prometheus.CounterVec

	// Sync Metrics
	SyncCyclesTotal *prometheus.CounterVec
	SyncDuration    *prometheus.HistogramVec
	SyncCursor      prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
// Go runtime and process collectors are registered alongside.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initSearchMetrics()
	r.initIndexMetrics()
	r.initSyncMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
