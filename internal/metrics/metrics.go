package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's prometheus collectors. A nil *Metrics is safe to
// use and records nothing, which keeps tests free of registry setup.
type Metrics struct {
	CatalogLoads      prometheus.Counter
	RecordsSkipped    prometheus.Counter
	Recomputes        prometheus.Counter
	RecomputeDuration prometheus.Histogram
	InteractionWrites *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CatalogLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bizmatch_catalog_loads_total",
			Help: "Catalog load operations.",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bizmatch_catalog_records_skipped_total",
			Help: "Raw records dropped during normalization.",
		}),
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bizmatch_pipeline_recomputes_total",
			Help: "Full filter/score/arrange pipeline runs.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bizmatch_pipeline_recompute_seconds",
			Help:    "Duration of one pipeline run.",
			Buckets: prometheus.DefBuckets,
		}),
		InteractionWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizmatch_interaction_writes_total",
			Help: "Interaction store writes by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		m.CatalogLoads, m.RecordsSkipped,
		m.Recomputes, m.RecomputeDuration,
		m.InteractionWrites,
	)
	return m
}

func (m *Metrics) ObserveLoad(skipped int) {
	if m == nil {
		return
	}
	m.CatalogLoads.Inc()
	m.RecordsSkipped.Add(float64(skipped))
}

func (m *Metrics) ObserveRecompute(seconds float64) {
	if m == nil {
		return
	}
	m.Recomputes.Inc()
	m.RecomputeDuration.Observe(seconds)
}

func (m *Metrics) ObserveInteraction(kind string) {
	if m == nil {
		return
	}
	m.InteractionWrites.WithLabelValues(kind).Inc()
}
