package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects planner counters on its own registry
type Metrics struct {
	registry *prometheus.Registry

	SubjectsAdded      prometheus.Counter
	PlansGenerated     prometheus.Counter
	MinutesAllocated   prometheus.Counter
	MinutesUnscheduled prometheus.Counter
	GenerateDuration   prometheus.Histogram
}

// New creates the planner metrics on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SubjectsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "subjects_added_total",
			Help:      "Subjects added to the session.",
		}),
		PlansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "plans_generated_total",
			Help:      "Study plans generated.",
		}),
		MinutesAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "minutes_allocated_total",
			Help:      "Study minutes allocated across generated plans.",
		}),
		MinutesUnscheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "minutes_unscheduled_total",
			Help:      "Study minutes left unallocated when a plan ends.",
		}),
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "planner",
			Name:      "generate_duration_seconds",
			Help:      "Time spent generating and storing a plan.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.SubjectsAdded,
		m.PlansGenerated,
		m.MinutesAllocated,
		m.MinutesUnscheduled,
		m.GenerateDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveGenerate records one finished plan generation
func (m *Metrics) ObserveGenerate(start time.Time, allocated, unscheduled int) {
	m.PlansGenerated.Inc()
	m.MinutesAllocated.Add(float64(allocated))
	m.MinutesUnscheduled.Add(float64(unscheduled))
	m.GenerateDuration.Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
