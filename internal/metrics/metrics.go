package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// Analysis metrics
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram

	// Provider metrics
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec

	// Cache and catalog
	cacheLookups   *prometheus.CounterVec
	catalogSchemes prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navscope_analyses_total",
				Help: "Total number of fund analyses",
			},
			[]string{"status"},
		),

		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "navscope_analysis_duration_seconds",
				Help:    "Fund analysis duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(r.analysesTotal)
	reg.MustRegister(r.analysisDuration)

	r.providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navscope_provider_requests_total",
			Help: "Total number of data provider requests",
		},
		[]string{"provider", "operation", "status"},
	)
	r.providerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navscope_provider_request_duration_seconds",
			Help:    "Data provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)
	r.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navscope_cache_lookups_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"kind", "result"},
	)
	r.catalogSchemes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "navscope_catalog_schemes",
			Help: "Number of schemes in the loaded catalog",
		},
	)

	reg.MustRegister(r.providerRequests)
	reg.MustRegister(r.providerDuration)
	reg.MustRegister(r.cacheLookups)
	reg.MustRegister(r.catalogSchemes)

	return r
}

// RecordAnalysis records a completed analysis.
func (r *Registry) RecordAnalysis(status string, duration float64) {
	r.analysesTotal.WithLabelValues(status).Inc()
	r.analysisDuration.Observe(duration)
}

// RecordProviderRequest records one call to a data provider.
func (r *Registry) RecordProviderRequest(provider, operation string, err error, duration float64) {
	r.providerRequests.WithLabelValues(provider, operation, errorToStatus(err)).Inc()
	r.providerDuration.WithLabelValues(provider, operation).Observe(duration)
}

// CacheLookup records a response cache hit or miss.
func (r *Registry) CacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(kind, result).Inc()
}

// SetCatalogSize sets the catalog size.
func (r *Registry) SetCatalogSize(size int) {
	r.catalogSchemes.Set(float64(size))
}

// WriteTextfile writes all metrics in the text exposition format, for
// pickup by a node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func errorToStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
