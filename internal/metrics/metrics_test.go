package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogsim/internal/metrics"
)

func TestRegisterAttachesEveryCollector(t *testing.T) {
	m := metrics.NewMetrics()
	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() { m.Register(reg) })
	// a CounterVec only shows up in Gather once it has a child.
	m.ActionsByType.WithLabelValues("WAIT", "true")

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
}

func TestAgentsAliveGaugeReflectsSet(t *testing.T) {
	m := metrics.NewMetrics()
	m.AgentsAlive.Set(3)

	var out dto.Metric
	require.NoError(t, m.AgentsAlive.Write(&out))
	assert.Equal(t, 3.0, out.GetGauge().GetValue())
}

func TestActionsByTypeIncrementsVectorIndependently(t *testing.T) {
	m := metrics.NewMetrics()
	m.ActionsByType.WithLabelValues("MOVE", "true").Inc()
	m.ActionsByType.WithLabelValues("MOVE", "true").Inc()
	m.ActionsByType.WithLabelValues("WAIT", "false").Inc()

	var moveMetric dto.Metric
	require.NoError(t, m.ActionsByType.WithLabelValues("MOVE", "true").Write(&moveMetric))
	assert.Equal(t, 2.0, moveMetric.GetCounter().GetValue())
}
