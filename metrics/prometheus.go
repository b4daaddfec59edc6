// Package metrics provides Prometheus metrics for the cache.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krisalay/ttl-cache/types"
)

// Prometheus implements types.Metrics with Prometheus collectors.
// Every collector carries a const "cache" label so several caches can share a registry.
type Prometheus struct {
	// Read metrics
	Hits     prometheus.Counter
	Misses   prometheus.Counter
	Renewals prometheus.Counter

	// Populate metrics
	Populates        prometheus.Counter
	PopulateFailures prometheus.Counter

	// Removal metrics
	Evictions   prometheus.Counter
	Expirations prometheus.Counter

	// Sweep metrics
	Sweeps        prometheus.Counter
	SweepDuration prometheus.Histogram
	Entries       prometheus.Gauge
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the cache collectors on reg under namespace.
func NewPrometheus(reg prometheus.Registerer, namespace, cacheName string) *Prometheus {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"cache": cacheName}

	return &Prometheus{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "hits_total",
			Help:        "Total number of reads served from the cache",
			ConstLabels: labels,
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "misses_total",
			Help:        "Total number of reads that found no live entry",
			ConstLabels: labels,
		}),
		Renewals: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "renewals_total",
			Help:        "Total number of reads that extended an entry's life",
			ConstLabels: labels,
		}),

		Populates: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "populates_total",
			Help:        "Total number of populate callbacks invoked",
			ConstLabels: labels,
		}),
		PopulateFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "populate_failures_total",
			Help:        "Total number of populate callbacks that returned an error",
			ConstLabels: labels,
		}),

		Evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "evictions_total",
			Help:        "Total number of entries removed by forced sweeps or for lacking a value",
			ConstLabels: labels,
		}),
		Expirations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "expirations_total",
			Help:        "Total number of entries removed because their ttl elapsed",
			ConstLabels: labels,
		}),

		Sweeps: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "sweeps_total",
			Help:        "Total number of sweep passes",
			ConstLabels: labels,
		}),
		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "sweep_duration_seconds",
			Help:        "Sweep pass duration in seconds",
			Buckets:     []float64{.00001, .0001, .001, .005, .01, .05, .1, .5, 1},
			ConstLabels: labels,
		}),
		Entries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "entries",
			Help:        "Entries left after the last sweep pass",
			ConstLabels: labels,
		}),
	}
}

func (m *Prometheus) Hit()   { m.Hits.Inc() }
func (m *Prometheus) Miss()  { m.Misses.Inc() }
func (m *Prometheus) Renew() { m.Renewals.Inc() }

func (m *Prometheus) Populate(err error) {
	m.Populates.Inc()
	if err != nil {
		m.PopulateFailures.Inc()
	}
}

func (m *Prometheus) Eviction() { m.Evictions.Inc() }
func (m *Prometheus) Expire()   { m.Expirations.Inc() }

// Sweep records one pass.
func (m *Prometheus) Sweep(stats types.SweepStats, took time.Duration) {
	m.Sweeps.Inc()
	m.SweepDuration.Observe(took.Seconds())
	m.Entries.Set(float64(stats.Scanned - stats.Deleted))
}
