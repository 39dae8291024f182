package populate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts population activity. A nil *Metrics records nothing.
type Metrics struct {
	rowsProcessed *prometheus.CounterVec
	rowsSkipped   *prometheus.CounterVec
	nodesCreated  *prometheus.CounterVec
	dedupHits     *prometheus.CounterVec
	passDuration  *prometheus.HistogramVec
}

// NewMetrics creates the population metrics and registers them with reg
// when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholargraph_rows_processed_total",
			Help: "Input rows processed per pass",
		}, []string{"pass"}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholargraph_rows_skipped_total",
			Help: "Input rows that produced no new entity, by pass and reason",
		}, []string{"pass", "reason"}),
		nodesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholargraph_nodes_created_total",
			Help: "Individuals created per leaf class",
		}, []string{"class"}),
		dedupHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholargraph_dedup_hits_total",
			Help: "Natural-key lookups that resolved to an existing individual",
		}, []string{"entity"}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scholargraph_pass_duration_seconds",
			Help:    "Wall time of each population pass",
			Buckets: prometheus.DefBuckets,
		}, []string{"pass"}),
	}
	if reg != nil {
		reg.MustRegister(m.rowsProcessed, m.rowsSkipped, m.nodesCreated, m.dedupHits, m.passDuration)
	}
	return m
}

func (m *Metrics) rowProcessed(p Pass) {
	if m != nil {
		m.rowsProcessed.WithLabelValues(string(p)).Inc()
	}
}

func (m *Metrics) rowSkipped(p Pass, reason string) {
	if m != nil {
		m.rowsSkipped.WithLabelValues(string(p), reason).Inc()
	}
}

func (m *Metrics) nodeCreated(class string) {
	if m != nil {
		m.nodesCreated.WithLabelValues(class).Inc()
	}
}

func (m *Metrics) dedupHit(entity string) {
	if m != nil {
		m.dedupHits.WithLabelValues(entity).Inc()
	}
}

func (m *Metrics) observePass(p Pass, d time.Duration) {
	if m != nil {
		m.passDuration.WithLabelValues(string(p)).Observe(d.Seconds())
	}
}
