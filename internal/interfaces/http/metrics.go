package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsRegistry holds the Prometheus metrics for the analytics
// service.
type MetricsRegistry struct {
	AnalysisDuration *prometheus.HistogramVec
	AnalysisTotal    *prometheus.CounterVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	SessionsStored   prometheus.Gauge
	RequestsRejected prometheus.Counter

	registry *prometheus.Registry
}

// NewMetricsRegistry creates and registers all service metrics.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pokeranalysis_analysis_duration_seconds",
				Help:    "Duration of each analysis run in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"kind"},
		),
		AnalysisTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokeranalysis_analysis_total",
				Help: "Total analysis runs by kind and result",
			},
			[]string{"kind", "result"},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokeranalysis_report_cache_hits_total",
			Help: "Report cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokeranalysis_report_cache_misses_total",
			Help: "Report cache misses",
		}),
		SessionsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pokeranalysis_sessions_stored",
			Help: "Number of session records in the store",
		}),
		RequestsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokeranalysis_requests_rejected_total",
			Help: "Requests rejected by the rate limiter",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.AnalysisDuration,
		m.AnalysisTotal,
		m.CacheHits,
		m.CacheMisses,
		m.SessionsStored,
		m.RequestsRejected,
	)
	return m
}

// Handler serves the /metrics endpoint.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAnalysis records one analysis run.
func (m *MetricsRegistry) ObserveAnalysis(kind string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "insufficient_data"
	}
	m.AnalysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	m.AnalysisTotal.WithLabelValues(kind, result).Inc()
}
