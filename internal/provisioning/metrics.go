package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "dropvpn"

// Metrics collects the measurements of one run in a private registry so they
// can be written to a node_exporter textfile when the run ends. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	provider string
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	attempts      *prometheus.CounterVec
	runSuccess    *prometheus.GaugeVec
	runTimestamp  *prometheus.GaugeVec
}

// NewMetrics creates the run metrics, labelled with provider.
func NewMetrics(provider string) *Metrics {
	m := &Metrics{
		provider: provider,
		registry: prometheus.NewRegistry(),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "provisioning",
				Name:      "stage_duration_seconds",
				Help:      "Time spent in each readiness stage",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s to ~4min
			},
			[]string{"provider", "stage"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "provisioning",
				Name:      "attempts_total",
				Help:      "Polling attempts by operation and result",
			},
			[]string{"provider", "operation", "result"},
		),
		runSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "run",
				Name:      "success",
				Help:      "Whether the last run succeeded (1) or failed (0)",
			},
			[]string{"provider"},
		),
		runTimestamp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "run",
				Name:      "last_timestamp_seconds",
				Help:      "Unix time the last run finished",
			},
			[]string{"provider"},
		),
	}

	m.registry.MustRegister(m.stageDuration, m.attempts, m.runSuccess, m.runTimestamp)
	return m
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveStage records how long the run stayed in stage.
func (m *Metrics) ObserveStage(stage Stage, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(m.provider, stage.String()).Observe(d.Seconds())
}

// RecordAttempt counts one attempt of operation.
func (m *Metrics) RecordAttempt(operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.attempts.WithLabelValues(m.provider, operation, result).Inc()
}

// RecordRun records the outcome of the run.
func (m *Metrics) RecordRun(success bool, at time.Time) {
	if m == nil {
		return
	}
	v := 0.0
	if success {
		v = 1
	}
	m.runSuccess.WithLabelValues(m.provider).Set(v)
	m.runTimestamp.WithLabelValues(m.provider).Set(float64(at.Unix()))
}

// WriteTextfile writes the metrics in the text exposition format to path,
// replacing the file atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
