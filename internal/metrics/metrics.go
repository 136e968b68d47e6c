// Package metrics exposes the simulation's Prometheus collectors.
// Observability is explicitly out of the core loop's own concerns
// Metrics is the seam the Simulation reports through,
// not something the core computes on its own. Adapted from the
// reference backend's Metrics/Register shape, narrowed to the
// counters a tick-driven cognitive simulation actually produces.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every collector the simulation core reports to.
type Metrics struct {
	TickDuration      prometheus.Histogram
	AgentsAlive       prometheus.Gauge
	ActionsByType     *prometheus.CounterVec
	DeathsTotal       prometheus.Counter
	MessagesProcessed prometheus.Counter
	PlanAbortsTotal   prometheus.Counter
}

// NewMetrics constructs an unregistered Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cogsim_tick_duration_seconds",
			Help:    "Wall-clock time to execute one simulation tick",
			Buckets: prometheus.DefBuckets,
		}),
		AgentsAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cogsim_agents_alive",
			Help: "Number of agents currently alive",
		}),
		ActionsByType: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cogsim_actions_total",
			Help: "Total committed actions, by action type and success",
		}, []string{"action_type", "success"}),
		DeathsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cogsim_deaths_total",
			Help: "Total agent deaths from starvation",
		}),
		MessagesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cogsim_messages_processed_total",
			Help: "Total inbox messages drained across all agents",
		}),
		PlanAbortsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cogsim_plan_aborts_total",
			Help: "Total plans discarded by the forward model or meta-reflection",
		}),
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.TickDuration,
		m.AgentsAlive,
		m.ActionsByType,
		m.DeathsTotal,
		m.MessagesProcessed,
		m.PlanAbortsTotal,
	)
}
