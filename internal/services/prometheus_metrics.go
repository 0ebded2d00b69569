package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionWrites    *prometheus.CounterVec
	transactionDuration  prometheus.Histogram
	reportQueries        *prometheus.CounterVec
	reportDuration       *prometheus.HistogramVec
	responseCache        *prometheus.CounterVec
	responseCacheEntries prometheus.Gauge
	authenticationEvents *prometheus.CounterVec
	demoTransactions     prometheus.Counter
}

// NewPrometheusMetrics registers the collectors with the default registry.
// Call it once per process.
func NewPrometheusMetrics() MetricsRecorderInterface {
	return newPrometheusMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewPrometheusMetricsWithRegistry registers the collectors with reg
func NewPrometheusMetricsWithRegistry(reg prometheus.Registerer) MetricsRecorderInterface {
	return newPrometheusMetrics(promauto.With(reg))
}

func newPrometheusMetrics(factory promauto.Factory) *PrometheusMetrics {
	return &PrometheusMetrics{
		transactionWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transaction_writes_total",
				Help: "Total number of ledger writes by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		transactionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transaction_write_duration_milliseconds",
				Help:    "Duration of a ledger write including its rollup upserts",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		reportQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_queries_total",
				Help: "Total number of report queries by report and outcome",
			},
			[]string{"report", "status"},
		),
		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_query_duration_seconds",
				Help:    "Report query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		responseCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "response_cache_requests_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
		responseCacheEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "response_cache_entries",
				Help: "Current number of cached responses",
			},
		),
		authenticationEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		demoTransactions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "demo_transactions_generated_total",
				Help: "Total number of demo transactions generated in development",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]

	switch name {
	case "transaction.write.success":
		m.transactionWrites.WithLabelValues(operation, "success").Inc()
	case "transaction.write.failed":
		m.transactionWrites.WithLabelValues(operation, "failed").Inc()
	case "report.query":
		if report := tags["report"]; report != "" {
			m.reportQueries.WithLabelValues(report, tags["status"]).Inc()
		}
	case "response_cache.hit":
		m.responseCache.WithLabelValues("hit").Inc()
	case "response_cache.miss":
		m.responseCache.WithLabelValues("miss").Inc()
	case "response_cache.invalidated":
		m.responseCache.WithLabelValues("invalidated").Inc()
	case "response_cache.stale_discarded":
		m.responseCache.WithLabelValues("stale_discarded").Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEvents.WithLabelValues(eventType).Inc()
		}
	case "demo.transaction.generated":
		m.demoTransactions.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.write":
		m.transactionDuration.Observe(float64(duration.Milliseconds()))
	default:
		m.reportDuration.WithLabelValues(name).Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "response_cache.entries":
		m.responseCacheEntries.Set(value)
	}
}
