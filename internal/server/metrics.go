package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Mutation outcomes recorded by [Metrics.Mutation].
const (
	OutcomeAdded     = "added"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeReset     = "reset"
)

// Metrics holds the collectors served on /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	collectionSize  *prometheus.GaugeVec
}

// NewMetrics registers the crate collectors plus Go and process collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crate",
			Name:      "collection_mutations_total",
			Help:      "Collection mutations by collection and outcome.",
		}, []string{"collection", "outcome"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crate",
			Name:      "persist_failures_total",
			Help:      "Writes that did not reach the backing store.",
		}, []string{"collection"}),
		collectionSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "crate",
			Name:      "collection_items",
			Help:      "Number of items in a collection after the last mutation.",
		}, []string{"collection"}),
	}

	m.registry.MustRegister(
		m.mutations,
		m.persistFailures,
		m.collectionSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing /metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Mutation counts one mutation of collection with outcome.
func (m *Metrics) Mutation(collection, outcome string) {
	m.mutations.WithLabelValues(collection, outcome).Inc()
}

// Persisted records the size after a mutation and counts a failed write when persisted is false.
func (m *Metrics) Persisted(collection string, size int, persisted bool) {
	m.collectionSize.WithLabelValues(collection).Set(float64(size))
	if !persisted {
		m.persistFailures.WithLabelValues(collection).Inc()
	}
}
