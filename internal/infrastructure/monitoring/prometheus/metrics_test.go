package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersAndCounts(t *testing.T) {
	m := NewMetrics()
	require.NotNil(t, m.Registry())

	m.DocumentCacheHits.WithLabelValues("memory").Inc()
	m.DocumentCacheHits.WithLabelValues("memory").Inc()
	m.DocumentCacheMisses.WithLabelValues("memory").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentCacheHits.WithLabelValues("memory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentCacheMisses.WithLabelValues("memory")))
}

func TestNewMetrics_IndependentInstances(t *testing.T) {
	// Two instances must not share registries, so tests and embedded uses
	// cannot collide on duplicate registration.
	a := NewMetrics()
	b := NewMetrics()
	a.GISQueryErrors.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.GISQueryErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GISQueryErrors))
}

func TestNewMetrics_HTTPLabels(t *testing.T) {
	m := NewMetrics()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/assessments", "200").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/assessments", "200")))
}
