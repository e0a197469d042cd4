// Package prometheus defines the application metric set and its registry
// wiring.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "planwise"

// Metrics holds every instrument the application records.  A single instance
// is created at startup and handed to the components that need it.
type Metrics struct {
	registry *prometheus.Registry

	DocumentCacheHits    *prometheus.CounterVec
	DocumentCacheMisses  *prometheus.CounterVec
	DocumentFetchSeconds *prometheus.HistogramVec
	DocumentFetchErrors  *prometheus.CounterVec

	GISQuerySeconds *prometheus.HistogramVec
	GISQueryErrors  prometheus.Counter

	AssessmentsTotal    *prometheus.CounterVec
	AssessmentSeconds   prometheus.Histogram
	DegradedFieldsTotal *prometheus.CounterVec

	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestSeconds *prometheus.HistogramVec
}

// NewMetrics builds the metric set on a fresh registry, including the
// standard Go and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,

		DocumentCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_cache_hits_total",
			Help:      "Document cache hits by backend.",
		}, []string{"backend"}),
		DocumentCacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_cache_misses_total",
			Help:      "Document cache misses by backend.",
		}, []string{"backend"}),
		DocumentFetchSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_fetch_duration_seconds",
			Help:      "Wall time of document fetch and text extraction.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"outcome"}),
		DocumentFetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_fetch_errors_total",
			Help:      "Document fetch failures by error code.",
		}, []string{"code"}),

		GISQuerySeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gis_query_duration_seconds",
			Help:      "Wall time of GIS feature queries by dataset.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"dataset"}),
		GISQueryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gis_query_errors_total",
			Help:      "Failed GIS feature queries.",
		}),

		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed property assessments by project type.",
		}, []string{"project_type"}),
		AssessmentSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "End to end assessment latency.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		DegradedFieldsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_degraded_fields_total",
			Help:      "Assessment result fields degraded by upstream failures.",
		}, []string{"field"}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	registry.MustRegister(
		m.DocumentCacheHits,
		m.DocumentCacheMisses,
		m.DocumentFetchSeconds,
		m.DocumentFetchErrors,
		m.GISQuerySeconds,
		m.GISQueryErrors,
		m.AssessmentsTotal,
		m.AssessmentSeconds,
		m.DegradedFieldsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestSeconds,
	)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
