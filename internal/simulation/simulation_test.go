package simulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogsim/internal/eventlog"
	"cogsim/internal/model"
	"cogsim/internal/simerrors"
	"cogsim/internal/simulation"
	"cogsim/internal/worldmap"
)

func twoLocationWorld() *worldmap.World {
	w := worldmap.NewWorld()
	w.AddLocation("A", []string{"B"})
	w.AddLocation("B", []string{"A"})
	return w
}

func TestRunRejectsNonPositiveTickCount(t *testing.T) {
	sim := simulation.New(twoLocationWorld(), 1, nil, nil)
	sim.World.AddAgent(model.NewAgent("a", "A", 50))

	assert.ErrorIs(t, sim.Run(context.Background(), 0), simerrors.ErrInvalidTickCount)
	assert.ErrorIs(t, sim.Run(context.Background(), -1), simerrors.ErrInvalidTickCount)
}

func TestRunRejectsEmptyWorld(t *testing.T) {
	sim := simulation.New(twoLocationWorld(), 1, nil, nil)
	assert.ErrorIs(t, sim.Run(context.Background(), 5), simerrors.ErrNoAgents)
}

func TestTickAdvancesTickCount(t *testing.T) {
	sim := simulation.New(twoLocationWorld(), 1, nil, nil)
	sim.World.AddAgent(model.NewAgent("a", "A", 50))

	require.NoError(t, sim.Tick(context.Background()))
	assert.Equal(t, 1, sim.TickCount)
	require.NoError(t, sim.Tick(context.Background()))
	assert.Equal(t, 2, sim.TickCount)
}

func TestRunStopsEarlyOnceEveryAgentDead(t *testing.T) {
	w := twoLocationWorld()
	a := model.NewAgent("a", "A", 1) // one tick of metabolism kills it
	w.AddAgent(a)
	sim := simulation.New(w, 1, nil, nil)

	require.NoError(t, sim.Run(context.Background(), 100))
	assert.Less(t, sim.TickCount, 100)
	assert.False(t, a.IsAlive)
}

func TestDeathIsRecordedAndCounted(t *testing.T) {
	w := twoLocationWorld()
	w.AddAgent(model.NewAgent("a", "A", 1))
	recorder := eventlog.NewMemoryRecorder()
	sim := simulation.New(w, 1, recorder, nil)

	require.NoError(t, sim.Tick(context.Background()))

	found := false
	for _, rec := range recorder.All() {
		if rec.Kind == eventlog.EventDeath {
			found = true
		}
	}
	assert.True(t, found, "expected an EventDeath record")
}

func TestDeadAgentsAreSkippedOnSubsequentTicks(t *testing.T) {
	w := twoLocationWorld()
	a := model.NewAgent("a", "A", 1)
	w.AddAgent(a)
	sim := simulation.New(w, 1, nil, nil)

	require.NoError(t, sim.Tick(context.Background()))
	require.False(t, a.IsAlive)
	energyAtDeath := a.Energy

	require.NoError(t, sim.Tick(context.Background()))
	assert.Equal(t, energyAtDeath, a.Energy, "a dead agent's energy must never change again")
}
