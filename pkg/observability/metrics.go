package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for automata_runs_total.
const (
	OutcomeAccepted = "accepted"
)

// Metrics holds the Prometheus collectors for engine runs.
type Metrics struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	transitions *prometheus.CounterVec
	inputLength *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of runs by machine and outcome",
			},
			[]string{"machine", "outcome"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_transitions_total",
				Help: "Total number of transitions taken",
			},
			[]string{"machine"},
		),
		inputLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_input_length",
				Help:    "Length of run inputs in tokens",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"machine"},
		),
	}
	m.registry.MustRegister(m.runs, m.transitions, m.inputLength)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.inputLength.WithLabelValues(e.Machine).Observe(float64(e.InputLength))
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(e.Machine).Inc()
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			m.runs.WithLabelValues(e.Machine, Outcome(e.Kind)).Inc()
		},
	}
}

// Outcome maps an error kind to the outcome label.
func Outcome(kind domain.ErrorKind) string {
	if kind == domain.KindNone {
		return OutcomeAccepted
	}
	return string(kind)
}
