package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	TurnsTotal      *prometheus.CounterVec
	WorkerRunsTotal *prometheus.CounterVec
	SelectionsTotal *prometheus.CounterVec
	TurnDuration    *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TurnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wanderplan_turns_total",
				Help: "Total number of conversation turns processed",
			},
			[]string{"phase"},
		),
		WorkerRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wanderplan_worker_runs_total",
				Help: "Total number of worker executions",
			},
			[]string{"kind", "source"},
		),
		SelectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wanderplan_selections_total",
				Help: "Total number of menu token selections",
			},
			[]string{"outcome"},
		),
		TurnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "wanderplan_turn_duration_seconds",
				Help: "Duration of end-to-end turn processing",
			},
			[]string{"phase"},
		),
	}

	reg.MustRegister(m.TurnsTotal, m.WorkerRunsTotal, m.SelectionsTotal, m.TurnDuration)
	return m
}

// NewNopMetrics creates collectors bound to a throwaway registry. Used as
// the default when no registerer is provided.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// ObserveTurn records one processed turn.
func (m *Metrics) ObserveTurn(phase string, start time.Time) {
	m.TurnsTotal.WithLabelValues(phase).Inc()
	m.TurnDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// ObserveWorkerRun records one worker execution.
func (m *Metrics) ObserveWorkerRun(kind, source string) {
	m.WorkerRunsTotal.WithLabelValues(kind, source).Inc()
}

// ObserveSelection records one token selection outcome.
func (m *Metrics) ObserveSelection(outcome string) {
	m.SelectionsTotal.WithLabelValues(outcome).Inc()
}
