// Package metrics exposes ingestion and search counters on a private
// prometheus registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "landwatch"

// Metrics records pipeline outcomes. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	units        *prometheus.CounterVec
	capabilities *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	corpusSize   prometheus.Gauge
	searches     *prometheus.CounterVec
}

// New registers every metric on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_total",
			Help:      "Ingestion units by terminal state and the stage they failed at.",
		}, []string{"state", "failed_at"}),
		capabilities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capability_calls_total",
			Help:      "External capability calls by capability and outcome.",
		}, []string{"capability", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_duration_seconds",
			Help:      "Wall time to take a unit to its terminal state.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"state"}),
		corpusSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "corpus_records",
			Help:      "Records in the corpus after the last operation.",
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	m.registry.MustRegister(m.units, m.capabilities, m.duration, m.corpusSize, m.searches)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Unit records a unit reaching state. failedAt is empty unless state is failed.
func (m *Metrics) Unit(state, failedAt string, d time.Duration) {
	if m == nil {
		return
	}
	m.units.WithLabelValues(state, failedAt).Inc()
	m.duration.WithLabelValues(state).Observe(d.Seconds())
}

// Capability records one capability call.
func (m *Metrics) Capability(name string, err error) {
	if m == nil {
		return
	}
	m.capabilities.WithLabelValues(name, outcome(err)).Inc()
}

// Search records one search.
func (m *Metrics) Search(kind string, err error) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(kind, outcome(err)).Inc()
}

// CorpusSize sets the corpus gauge.
func (m *Metrics) CorpusSize(n int) {
	if m == nil {
		return
	}
	m.corpusSize.Set(float64(n))
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
