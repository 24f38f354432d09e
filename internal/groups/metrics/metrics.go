package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the group catalog.
type Metrics struct {
	GroupsCreated      *prometheus.CounterVec
	GenerateRejected   *prometheus.CounterVec
	BuildLatency       *prometheus.HistogramVec
	ComposeSteps       prometheus.Histogram
	ComposeOutcome     *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
	CacheLookupLatency prometheus.Histogram
}

// New creates the group metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GroupsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cayley_groups_created_total",
			Help: "Groups stored in the catalog by family and origin",
		}, []string{"family", "origin"}), // origin: "generated", "submitted", "seed"

		GenerateRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cayley_generate_rejected_total",
			Help: "Generate requests refused by reason",
		}, []string{"reason"}),

		BuildLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cayley_table_build_duration_seconds",
			Help:    "Time to enumerate members and fill the Cayley table",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"family"}),

		ComposeSteps: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cayley_compose_steps",
			Help:    "Number of steps recorded per composition trace",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),

		ComposeOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cayley_compose_outcomes_total",
			Help: "Composition traces by final stepper state",
		}, []string{"state"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cayley_group_cache_lookups_total",
			Help: "Group cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"

		CacheLookupLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cayley_group_cache_lookup_duration_seconds",
			Help:    "Latency of group cache reads",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// IncrementCreated records a stored group.
func (m *Metrics) IncrementCreated(family, origin string) {
	if m != nil {
		m.GroupsCreated.WithLabelValues(family, origin).Inc()
	}
}

// IncrementRejected records a refused generate request.
func (m *Metrics) IncrementRejected(reason string) {
	if m != nil {
		m.GenerateRejected.WithLabelValues(reason).Inc()
	}
}

// ObserveBuild records table build latency.
func (m *Metrics) ObserveBuild(family string, d time.Duration) {
	if m != nil {
		m.BuildLatency.WithLabelValues(family).Observe(d.Seconds())
	}
}

// ObserveCompose records the size and outcome of a trace.
func (m *Metrics) ObserveCompose(steps int, state string) {
	if m != nil {
		m.ComposeSteps.Observe(float64(steps))
		m.ComposeOutcome.WithLabelValues(state).Inc()
	}
}

// RecordCacheHit records a cache hit.
func (m *Metrics) RecordCacheHit(d time.Duration) { m.recordCache("hit", d) }

// RecordCacheMiss records a cache miss.
func (m *Metrics) RecordCacheMiss(d time.Duration) { m.recordCache("miss", d) }

// RecordCacheError records a failed cache read.
func (m *Metrics) RecordCacheError(d time.Duration) { m.recordCache("error", d) }

// RecordCacheBypass records a lookup that skipped Redis because its circuit
// was open.
func (m *Metrics) RecordCacheBypass() {
	if m != nil {
		m.CacheLookups.WithLabelValues("bypass").Inc()
	}
}

func (m *Metrics) recordCache(result string, d time.Duration) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
		m.CacheLookupLatency.Observe(d.Seconds())
	}
}
