package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crisisflow_dashboard"

// Metrics - коллекторы Prometheus для опроса, отправки отчетов и запросов во внешний API
type Metrics struct {
	Polls            *prometheus.CounterVec // метки: outcome={success,error}
	SnapshotReports  prometheus.Gauge
	Submissions      *prometheus.CounterVec   // метки: outcome={submitted,noop,error}
	UpstreamDuration *prometheus.HistogramVec // метки: method={list,get,create}
	AlertsPublished  *prometheus.CounterVec   // метки: outcome={success,error}
	AlertDeliveries  *prometheus.CounterVec   // метки: outcome={delivered,failed,skipped}
}

// NewMetrics создает метрики дашборда и регистрирует их в стандартном реестре Prometheus
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Polls,
		m.SnapshotReports,
		m.Submissions,
		m.UpstreamDuration,
		m.AlertsPublished,
		m.AlertDeliveries,
	)
	return m
}

// NewMetricsForTesting создает метрики без регистрации, у каждого теста свой набор
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Report list fetches by outcome.",
		}, []string{"outcome"}),
		SnapshotReports: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_reports",
			Help:      "Number of reports in the current snapshot.",
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Report submissions by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Reports API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		AlertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "danger_zone_alerts_published_total",
			Help:      "Danger-zone alerts pushed to the queue by outcome.",
		}, []string{"outcome"}),
		AlertDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "danger_zone_alert_deliveries_total",
			Help:      "Danger-zone alert webhook deliveries by outcome.",
		}, []string{"outcome"}),
	}
}
