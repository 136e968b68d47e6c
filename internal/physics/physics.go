// Package physics is the simulation's pure rules engine: given a
// World, an Agent, and an Action, it returns the Effect that rule
// produces. It never mutates World or Agent — the Simulation is the
// only component allowed to commit state.
package physics

import (
	"fmt"

	"cogsim/internal/model"
	"cogsim/internal/worldmap"
)

// GetValidActions enumerates every action currently legal for agent,
// used by test controllers and by anything that wants to sample the
// full action space rather than drive the cognitive pipeline.
func GetValidActions(w *worldmap.World, agent *model.Agent) []model.Action {
	actions := []model.Action{{Type: model.ActionWait}}

	for _, n := range w.Neighbors(agent.LocationID) {
		actions = append(actions, model.Action{Type: model.ActionMove, TargetID: n})
	}

	for _, o := range w.ObjectsAt(agent.LocationID) {
		switch o.Kind {
		case model.ObjectFood:
			actions = append(actions, model.Action{Type: model.ActionConsume, TargetID: o.ID})
		case model.ObjectCoopFood:
			actions = append(actions, model.Action{Type: model.ActionExtract, TargetID: o.ID})
		}
	}

	actions = append(actions, model.Action{Type: model.ActionCommunicate})

	for _, o := range agent.Inventory {
		actions = append(actions, model.Action{Type: model.ActionDrop, TargetID: o.ID})
	}

	return actions
}

// Resolve determines the outcome of a single action. Pure: w and
// agent are read-only inputs.
func Resolve(cfg Config, w *worldmap.World, agent *model.Agent, action model.Action) model.Effect {
	switch action.Type {
	case model.ActionMove:
		return ruleMove(cfg, w, agent, action)
	case model.ActionConsume:
		return ruleConsume(w, agent, action)
	case model.ActionCommunicate:
		return model.Effect{
			AgentID:    agent.ID,
			Action:     action,
			Success:    true,
			EnergyCost: cfg.Comm,
			Message:    "Broadcasted info",
		}
	case model.ActionPickup:
		return rulePickup(cfg, w, agent, action)
	case model.ActionDrop:
		return ruleDrop(cfg, agent, action)
	case model.ActionExtract:
		return ruleExtract(cfg, w, agent, action)
	case model.ActionUse:
		return ruleUse(cfg, w, agent, action)
	case model.ActionWait:
		return model.Effect{AgentID: agent.ID, Action: action, Success: true, Message: "Waited"}
	default:
		return model.Effect{AgentID: agent.ID, Action: action, Success: false, Message: "Unknown action"}
	}
}

// TickMetabolism computes the per-tick upkeep cost: base metabolism
// plus the value of any HAZARD objects co-located with the agent.
func TickMetabolism(cfg Config, w *worldmap.World, agent *model.Agent) model.Effect {
	cost := cfg.Metabolism
	for _, o := range w.ObjectsAt(agent.LocationID) {
		if o.Kind == model.ObjectHazard {
			cost += o.Value
		}
	}
	msg := "Metabolism"
	if cost > cfg.Metabolism {
		msg = "Metabolism + Hazard"
	}
	return model.Effect{
		AgentID:    agent.ID,
		Action:     model.Action{Type: model.ActionWait},
		Success:    true,
		EnergyCost: cost,
		Message:    msg,
	}
}

func fail(agent *model.Agent, action model.Action, msg string) model.Effect {
	return model.Effect{AgentID: agent.ID, Action: action, Success: false, Message: msg}
}

func ruleMove(cfg Config, w *worldmap.World, agent *model.Agent, action model.Action) model.Effect {
	neighbors := w.Neighbors(agent.LocationID)
	target := action.TargetID
	found := false
	for _, n := range neighbors {
		if n == target {
			found = true
			break
		}
	}
	if !found {
		return fail(agent, action, "Cannot move to "+target+" from "+agent.LocationID)
	}
	if agent.Energy < cfg.Move {
		return fail(agent, action, "Not enough energy")
	}
	return model.Effect{
		AgentID:       agent.ID,
		Action:        action,
		Success:       true,
		EnergyCost:    cfg.Move,
		NewLocationID: target,
		Message:       "Moved to " + target,
	}
}

func ruleConsume(w *worldmap.World, agent *model.Agent, action model.Action) model.Effect {
	var target *model.Object
	for _, o := range w.ObjectsAt(agent.LocationID) {
		if o.ID == action.TargetID {
			target = o
			break
		}
	}
	if target == nil {
		return fail(agent, action, "Object not found")
	}
	if target.Kind != model.ObjectFood {
		return fail(agent, action, "Cannot eat that")
	}
	return model.Effect{
		AgentID:         agent.ID,
		Action:          action,
		Success:         true,
		EnergyGain:      target.Value,
		RemovedObjectID: target.ID,
		Message:         "Ate " + string(target.Kind),
	}
}

func rulePickup(cfg Config, w *worldmap.World, agent *model.Agent, action model.Action) model.Effect {
	var target *model.Object
	for _, o := range w.ObjectsAt(agent.LocationID) {
		if o.ID == action.TargetID {
			target = o
			break
		}
	}
	if target == nil {
		return fail(agent, action, "Object not found")
	}
	if agent.Energy < cfg.Pickup {
		return fail(agent, action, "Not enough energy")
	}
	return model.Effect{
		AgentID:         agent.ID,
		Action:          action,
		Success:         true,
		EnergyCost:      cfg.Pickup,
		RemovedObjectID: target.ID,
		Message:         "Picked up " + string(target.Kind),
	}
}

func ruleDrop(cfg Config, agent *model.Agent, action model.Action) model.Effect {
	var target *model.Object
	for _, o := range agent.Inventory {
		if o.ID == action.TargetID {
			target = o
			break
		}
	}
	if target == nil {
		return fail(agent, action, "Object not in inventory")
	}
	if agent.Energy < cfg.Drop {
		return fail(agent, action, "Not enough energy")
	}
	return model.Effect{
		AgentID:     agent.ID,
		Action:      action,
		Success:     true,
		EnergyCost:  cfg.Drop,
		AddedObject: target,
		Message:     "Dropped " + string(target.Kind),
	}
}

func ruleExtract(cfg Config, w *worldmap.World, agent *model.Agent, action model.Action) model.Effect {
	obj, ok := w.Entity(action.TargetID)
	if !ok || obj.LocationID != agent.LocationID {
		return fail(agent, action, "Object not found at location")
	}
	if agent.Energy < cfg.Extract {
		return fail(agent, action, "Not enough energy")
	}
	agentsHere := w.AgentsAt(agent.LocationID)
	if len(agentsHere) < obj.RequiredAgents {
		return fail(agent, action, fmt.Sprintf("Need %d agents, only %d present", obj.RequiredAgents, len(agentsHere)))
	}
	return model.Effect{
		AgentID:         agent.ID,
		Action:          action,
		Success:         true,
		EnergyCost:      cfg.Extract,
		EnergyGain:      obj.Value,
		RemovedObjectID: obj.ID,
		Message:         "Successfully extracted " + obj.ID,
	}
}

func ruleUse(cfg Config, w *worldmap.World, agent *model.Agent, action model.Action) model.Effect {
	obj, ok := w.Entity(action.TargetID)
	if !ok || obj.LocationID != agent.LocationID {
		return fail(agent, action, "Obstacle not found at location")
	}
	if obj.Kind != model.ObjectObstacle {
		return fail(agent, action, "Target is not a usable obstacle.")
	}
	if agent.Energy < cfg.Use {
		return fail(agent, action, "Not enough energy")
	}
	if obj.RequiredAgents > 1 {
		agentsHere := w.AgentsAt(agent.LocationID)
		if len(agentsHere) < obj.RequiredAgents {
			return fail(agent, action, fmt.Sprintf("Need %d agents", obj.RequiredAgents))
		}
	}
	if obj.ToolRequired == "" {
		return model.Effect{
			AgentID:         agent.ID,
			Action:          action,
			Success:         true,
			EnergyCost:      cfg.Use,
			RemovedObjectID: obj.ID,
			Message:         "Used " + obj.ID,
		}
	}
	if agent.InventoryTool(obj.ToolRequired) == nil {
		return fail(agent, action, "Need a "+obj.ToolRequired+" to use this.")
	}
	return model.Effect{
		AgentID:         agent.ID,
		Action:          action,
		Success:         true,
		EnergyCost:      cfg.Use,
		RemovedObjectID: obj.ID,
		Message:         "Successfully used tool on " + obj.ID,
	}
}
