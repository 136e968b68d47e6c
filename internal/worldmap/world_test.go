package worldmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogsim/internal/model"
	"cogsim/internal/worldmap"
)

func buildLine(w *worldmap.World) {
	w.AddLocation("A", []string{"B"})
	w.AddLocation("B", []string{"A", "C"})
	w.AddLocation("C", []string{"B"})
}

func TestNeighborsUnknownLocation(t *testing.T) {
	w := worldmap.NewWorld()
	buildLine(w)
	assert.Nil(t, w.Neighbors("Z"))
	assert.Equal(t, []string{"A", "C"}, w.Neighbors("B"))
}

func TestAgentInsertionOrderIsStable(t *testing.T) {
	w := worldmap.NewWorld()
	buildLine(w)
	a1 := model.NewAgent("one", "A", 100)
	a2 := model.NewAgent("two", "A", 100)
	a3 := model.NewAgent("three", "A", 100)
	w.AddAgent(a1)
	w.AddAgent(a2)
	w.AddAgent(a3)

	got := w.Agents()
	require.Len(t, got, 3)
	assert.Equal(t, []string{a1.ID, a2.ID, a3.ID}, []string{got[0].ID, got[1].ID, got[2].ID})

	// re-adding an existing agent must not duplicate or reorder it.
	w.AddAgent(a1)
	assert.Len(t, w.Agents(), 3)
}

func TestObjectLifecycle(t *testing.T) {
	w := worldmap.NewWorld()
	buildLine(w)
	food := model.NewObject(model.ObjectFood, 10)
	food.LocationID = "A"
	w.AddObject(food)

	require.Len(t, w.ObjectsAt("A"), 1)
	got, ok := w.Entity(food.ID)
	require.True(t, ok)
	assert.Equal(t, food.ID, got.ID)

	w.UnlistObject(food.ID)
	assert.Empty(t, w.ObjectsAt("A"))
	stillRegistered, ok := w.Entity(food.ID)
	require.True(t, ok)
	assert.Equal(t, "", stillRegistered.LocationID)

	w.AddObjectToLocation(food.ID, "C")
	require.Len(t, w.ObjectsAt("C"), 1)

	w.RemoveObject(food.ID)
	assert.Empty(t, w.ObjectsAt("C"))
	_, ok = w.Entity(food.ID)
	assert.False(t, ok)
}

func TestAgentsAtOnlyReturnsAliveCoLocated(t *testing.T) {
	w := worldmap.NewWorld()
	buildLine(w)
	alive := model.NewAgent("alive", "B", 50)
	dead := model.NewAgent("dead", "B", 0)
	dead.IsAlive = false
	w.AddAgent(alive)
	w.AddAgent(dead)

	got := w.AgentsAt("B")
	require.Len(t, got, 1)
	assert.Equal(t, alive.ID, got[0].ID)
}

func TestMoveAgent(t *testing.T) {
	w := worldmap.NewWorld()
	buildLine(w)
	a := model.NewAgent("mover", "A", 50)
	w.AddAgent(a)
	w.MoveAgent(a.ID, "B")
	assert.Equal(t, "B", a.LocationID)
}
