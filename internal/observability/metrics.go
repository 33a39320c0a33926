package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// batch pipeline.
type Metrics struct {
	RowsIngested    prometheus.Counter
	RowsFiltered    prometheus.Counter
	OutliersRemoved prometheus.Counter
	PipelineRunning prometheus.Gauge

	StageDuration *prometheus.HistogramVec // label: stage
	StageFailures *prometheus.CounterVec   // label: stage

	registry *prometheus.Registry
}

// NewMetrics creates the pipeline metrics on a dedicated registry. The
// process is short-lived, so metrics are delivered with PushAll rather than
// scraped.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.RowsIngested,
		m.RowsFiltered,
		m.OutliersRemoved,
		m.PipelineRunning,
		m.StageDuration,
		m.StageFailures,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iot_temp_etl",
			Name:      "rows_ingested_total",
			Help:      "Total raw rows read from the source CSV.",
		}),
		RowsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iot_temp_etl",
			Name:      "rows_filtered_total",
			Help:      "Indoor rows surviving the filter and date parse.",
		}),
		OutliersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iot_temp_etl",
			Name:      "outliers_removed_total",
			Help:      "Rows dropped by the percentile band.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "iot_temp_etl",
			Name:      "pipeline_running",
			Help:      "1 while the pipeline is executing, 0 otherwise.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "iot_temp_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		StageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iot_temp_etl",
			Name:      "stage_failures_total",
			Help:      "Stage executions that aborted with an error.",
		}, []string{"stage"}),
	}
}

// PushAll pushes the run's metrics to a Pushgateway, grouped by job name.
// No-op when Metrics was built for testing (no registry).
func (m *Metrics) PushAll(gatewayURL, job string) error {
	if m.registry == nil {
		return nil
	}
	return push.New(gatewayURL, job).Gatherer(m.registry).Push()
}
