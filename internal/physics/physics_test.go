package physics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogsim/internal/model"
	"cogsim/internal/physics"
	"cogsim/internal/worldmap"
)

func buildWorld() (*worldmap.World, *model.Agent) {
	w := worldmap.NewWorld()
	w.AddLocation("A", []string{"B"})
	w.AddLocation("B", []string{"A"})
	agent := model.NewAgent("tester", "A", 50)
	w.AddAgent(agent)
	return w, agent
}

func TestResolveMoveSuccess(t *testing.T) {
	w, agent := buildWorld()
	cfg := physics.DefaultConfig()
	eff := physics.Resolve(cfg, w, agent, model.Action{Type: model.ActionMove, TargetID: "B"})
	assert.True(t, eff.Success)
	assert.Equal(t, "B", eff.NewLocationID)
	assert.Equal(t, cfg.Move, eff.EnergyCost)
}

func TestResolveMoveRejectsNonNeighbor(t *testing.T) {
	w := worldmap.NewWorld()
	w.AddLocation("A", []string{"B"})
	w.AddLocation("C", nil)
	agent := model.NewAgent("tester", "A", 50)
	w.AddAgent(agent)

	eff := physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionMove, TargetID: "C"})
	assert.False(t, eff.Success)
}

func TestResolveMoveInsufficientEnergy(t *testing.T) {
	w, agent := buildWorld()
	agent.Energy = 1
	eff := physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionMove, TargetID: "B"})
	assert.False(t, eff.Success)
}

func TestResolveConsumeFood(t *testing.T) {
	w, agent := buildWorld()
	food := model.NewObject(model.ObjectFood, 15)
	food.LocationID = "A"
	w.AddObject(food)

	eff := physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionConsume, TargetID: food.ID})
	require.True(t, eff.Success)
	assert.Equal(t, 15, eff.EnergyGain)
	assert.Equal(t, food.ID, eff.RemovedObjectID)
}

func TestResolveConsumeRejectsNonFood(t *testing.T) {
	w, agent := buildWorld()
	tool := model.NewObject(model.ObjectTool, 0)
	tool.LocationID = "A"
	w.AddObject(tool)

	eff := physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionConsume, TargetID: tool.ID})
	assert.False(t, eff.Success)
}

func TestResolveExtractRequiresEnoughAgents(t *testing.T) {
	w, agent := buildWorld()
	coop := model.NewObject(model.ObjectCoopFood, 30)
	coop.LocationID = "A"
	coop.RequiredAgents = 2
	w.AddObject(coop)

	eff := physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionExtract, TargetID: coop.ID})
	assert.False(t, eff.Success)

	second := model.NewAgent("helper", "A", 50)
	w.AddAgent(second)
	eff = physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionExtract, TargetID: coop.ID})
	assert.True(t, eff.Success)
	assert.Equal(t, 30, eff.EnergyGain)
}

func TestResolveUseObstacleRequiresTool(t *testing.T) {
	w, agent := buildWorld()
	obstacle := model.NewObject(model.ObjectObstacle, 0)
	obstacle.LocationID = "A"
	obstacle.ToolRequired = "AXE"
	w.AddObject(obstacle)

	eff := physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionUse, TargetID: obstacle.ID})
	assert.False(t, eff.Success)

	agent.Inventory = append(agent.Inventory, &model.Object{ID: "axe-1", Kind: model.ObjectTool, ToolType: "AXE"})
	eff = physics.Resolve(physics.DefaultConfig(), w, agent, model.Action{Type: model.ActionUse, TargetID: obstacle.ID})
	assert.True(t, eff.Success)
}

func TestTickMetabolismAddsHazardCost(t *testing.T) {
	w, agent := buildWorld()
	cfg := physics.DefaultConfig()
	base := physics.TickMetabolism(cfg, w, agent)
	assert.Equal(t, cfg.Metabolism, base.EnergyCost)

	hazard := model.NewObject(model.ObjectHazard, 7)
	hazard.LocationID = "A"
	w.AddObject(hazard)
	withHazard := physics.TickMetabolism(cfg, w, agent)
	assert.Equal(t, cfg.Metabolism+7, withHazard.EnergyCost)
}

func TestGetValidActionsIncludesWaitAndMoves(t *testing.T) {
	w, agent := buildWorld()
	actions := physics.GetValidActions(w, agent)
	require.NotEmpty(t, actions)
	assert.Equal(t, model.ActionWait, actions[0].Type)

	found := false
	for _, a := range actions {
		if a.Type == model.ActionMove && a.TargetID == "B" {
			found = true
		}
	}
	assert.True(t, found)
}
