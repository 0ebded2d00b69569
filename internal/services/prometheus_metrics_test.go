package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_TransactionWrites(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newPrometheusMetrics(promautoFactory(reg))

	metrics.IncrementCounter("transaction.write.success", map[string]string{"operation": "record"})
	metrics.IncrementCounter("transaction.write.success", map[string]string{"operation": "record"})
	metrics.IncrementCounter("transaction.write.failed", map[string]string{"operation": "edit"})

	assert.Equal(t, float64(2), metricValue(t, metrics.transactionWrites.WithLabelValues("record", "success")))
	assert.Equal(t, float64(1), metricValue(t, metrics.transactionWrites.WithLabelValues("edit", "failed")))
}

func TestPrometheusMetrics_ResponseCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newPrometheusMetrics(promautoFactory(reg))

	metrics.IncrementCounter("response_cache.hit", nil)
	metrics.IncrementCounter("response_cache.miss", nil)
	metrics.RecordGauge("response_cache.entries", 3, nil)

	assert.Equal(t, float64(1), metricValue(t, metrics.responseCache.WithLabelValues("hit")))
	assert.Equal(t, float64(1), metricValue(t, metrics.responseCache.WithLabelValues("miss")))
	assert.Equal(t, float64(3), metricValue(t, metrics.responseCacheEntries))
}

func TestPrometheusMetrics_UnknownNamesIgnored(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newPrometheusMetrics(promautoFactory(reg))

	assert.NotPanics(t, func() {
		metrics.IncrementCounter("does.not.exist", map[string]string{})
		metrics.RecordGauge("does.not.exist", 1, nil)
		metrics.RecordProcessingTime("history", 5*time.Millisecond)
	})
}

func promautoFactory(reg prometheus.Registerer) promauto.Factory {
	return promauto.With(reg)
}

func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	if out.Gauge != nil {
		return out.Gauge.GetValue()
	}
	return 0
}
