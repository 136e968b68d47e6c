// Package mind is an agent's full cognitive cycle for one tick:
// Perceive gathers and records what the agent can currently sense,
// Decide turns that perception into the single Action the agent
// commits to.
package mind

import (
	"math/rand"

	"cogsim/internal/forwardmodel"
	"cogsim/internal/goals"
	"cogsim/internal/memoryanalyzer"
	"cogsim/internal/model"
	"cogsim/internal/physics"
	"cogsim/internal/planner"
	"cogsim/internal/reflection"
	"cogsim/internal/social"
	"cogsim/internal/worldmap"
)

// SurvivalThreshold is the energy level below which an agent
// interrupts any plan to eat visible food on sight.
const SurvivalThreshold = 30

// Perceive gathers everything agent can currently sense at its
// location and one hop out, folds it into short-term memory, the
// cognitive map, the social map, reputation credit, and long-term
// spatial statistics, then returns the snapshot.
func Perceive(w *worldmap.World, agent *model.Agent) model.Perception {
	loc := agent.LocationID
	objects := w.ObjectsAt(loc)

	var visibleFood, visibleHazards []string
	var visibleCoopFood []model.CoopFoodInfo
	var visibleTools []model.ToolInfo
	var visibleObstacles []model.ObstacleInfo

	for _, o := range objects {
		switch o.Kind {
		case model.ObjectFood:
			visibleFood = append(visibleFood, o.ID)
		case model.ObjectHazard:
			visibleHazards = append(visibleHazards, o.ID)
		case model.ObjectCoopFood:
			visibleCoopFood = append(visibleCoopFood, model.CoopFoodInfo{ID: o.ID, Required: o.RequiredAgents, Value: o.Value})
		case model.ObjectTool:
			visibleTools = append(visibleTools, model.ToolInfo{ID: o.ID, ToolType: o.ToolType})
		case model.ObjectObstacle:
			visibleObstacles = append(visibleObstacles, model.ObstacleInfo{ID: o.ID, ToolRequired: o.ToolRequired, RequiredAgents: o.RequiredAgents})
		}
	}

	neighbors := w.Neighbors(loc)

	var visitedNeighbors []string
	for _, n := range neighbors {
		if agent.HasVisited(n) {
			visitedNeighbors = append(visitedNeighbors, n)
		}
	}

	neighborSet := make(map[string]struct{}, len(neighbors))
	for _, n := range neighbors {
		neighborSet[n] = struct{}{}
	}

	var visibleAgents []model.VisibleAgent
	for _, other := range w.Agents() {
		if other.ID == agent.ID || !other.IsAlive {
			continue
		}
		if other.LocationID == loc {
			visibleAgents = append(visibleAgents, model.VisibleAgent{
				ID: other.ID, Location: other.LocationID, Energy: other.Energy, LastAction: other.LastAction, Distance: 0,
			})
		} else if _, adjacent := neighborSet[other.LocationID]; adjacent {
			visibleAgents = append(visibleAgents, model.VisibleAgent{
				ID: other.ID, Location: other.LocationID, Energy: other.Energy, LastAction: other.LastAction, Distance: 1,
			})
		}
	}

	inventory := make([]string, 0, len(agent.Inventory))
	for _, o := range agent.Inventory {
		inventory = append(inventory, o.ID)
	}

	p := model.Perception{
		Tick:             agent.LastTickUpdated,
		Location:         loc,
		Energy:           agent.Energy,
		VisibleFood:      visibleFood,
		VisibleHazards:   visibleHazards,
		VisibleCoopFood:  visibleCoopFood,
		VisibleTools:     visibleTools,
		VisibleObstacles: visibleObstacles,
		Neighbors:        neighbors,
		VisitedNeighbors: visitedNeighbors,
		VisibleAgents:    visibleAgents,
		Inventory:        inventory,
	}

	prev := agent.PreviousPerception()

	agent.RememberPerception(p)
	agent.VisitedLocations[loc] = struct{}{}

	node, ok := agent.CognitiveMap[loc]
	if !ok {
		node = &model.CognitiveNode{}
		agent.CognitiveMap[loc] = node
	}
	node.Neighbors = neighbors
	node.Objects = nil
	if len(visibleFood) > 0 {
		node.AddTag(string(model.ObjectFood))
	}
	if len(visibleHazards) > 0 {
		node.AddTag(string(model.ObjectHazard))
	}
	if len(visibleCoopFood) > 0 {
		node.AddTag(string(model.ObjectCoopFood))
	}
	if len(visibleTools) > 0 {
		node.AddTag(string(model.ObjectTool))
		node.Tools = visibleTools
	}
	if len(visibleObstacles) > 0 {
		node.AddTag(string(model.ObjectObstacle))
		node.Obstacles = visibleObstacles
	}
	node.LastTick = agent.LastTickUpdated

	for _, va := range visibleAgents {
		social.UpdateSeenAgent(agent, va.ID, model.SocialObservation{
			ID: va.ID, Location: va.Location, Energy: va.Energy, LastAction: va.LastAction, LastSeenTick: p.Tick,
		})
	}

	if prev != nil && prev.Location == loc && len(prev.VisibleCoopFood) > 0 && len(visibleCoopFood) == 0 {
		prevHere := make(map[string]struct{})
		for _, va := range prev.VisibleAgents {
			if va.Distance == 0 {
				prevHere[va.ID] = struct{}{}
			}
		}
		for _, va := range visibleAgents {
			if va.Distance != 0 {
				continue
			}
			if _, was := prevHere[va.ID]; was {
				social.UpdateReputation(agent, va.ID, 0.5)
			}
		}
	}

	memoryanalyzer.UpdatePatterns(agent, p)

	return p
}

// Decide runs the full priority cascade — story generation, goal
// selection, reactive cooperation/alarm interrupts, survival
// interrupts, plan validation and execution, and goal-driven
// fallbacks — and returns the single Action agent commits to this
// tick. rng drives every place the reference makes a random pick,
// kept as a parameter so the Simulation's one seeded generator is the
// only source of randomness anywhere in the system.
func Decide(agent *model.Agent, p model.Perception, rng *rand.Rand) model.Action {
	social.GenerateStory(agent, p)

	activeGoal := goals.SelectTopGoal(agent, p)
	if agent.CurrentGoal != string(activeGoal.Type) {
		if len(agent.PlanQueue) > 0 {
			agent.PlanQueue = nil
		}
		agent.GoalHistory = append(agent.GoalHistory, agent.CurrentGoal)
		agent.CurrentGoal = string(activeGoal.Type)
	}

	if len(p.VisibleCoopFood) > 0 {
		res := p.VisibleCoopFood[0]
		agentsHere := 1
		for _, va := range p.VisibleAgents {
			if va.Distance == 0 {
				agentsHere++
			}
		}
		if agentsHere >= res.Required {
			return model.Action{Type: model.ActionExtract, TargetID: res.ID}
		}
		if p.Energy > 20 {
			return model.Action{Type: model.ActionCommunicate, TargetID: "HELP_CALL"}
		}
	}

	if len(p.VisibleHazards) > 0 {
		return model.Action{Type: model.ActionCommunicate, TargetID: "ALARM"}
	}

	if activeGoal.Type == goals.GoalSocial {
		if target := social.DecideCooperation(agent, p); target != "" {
			return model.Action{Type: model.ActionCommunicate, TargetID: target}
		}

		var listener string
		for _, va := range p.VisibleAgents {
			if va.Distance == 0 {
				listener = va.ID
				break
			}
		}
		if listener != "" && len(agent.Stories) > 0 {
			if story := social.SelectStoryToTell(agent); story != nil {
				return model.Action{Type: model.ActionCommunicate, TargetID: "STORY:" + listener}
			}
		}

		if followTarget := social.ObservationToImitate(agent, p, func(loc string) bool { return reflection.IsSafe(agent, loc) }); followTarget != "" {
			return model.Action{Type: model.ActionMove, TargetID: followTarget}
		}
	}

	if p.Energy < SurvivalThreshold && len(p.VisibleFood) > 0 {
		return model.Action{Type: model.ActionConsume, TargetID: p.VisibleFood[0]}
	}

	cfg := physics.DefaultConfig()
	if len(agent.PlanQueue) > 0 {
		if !forwardmodel.IsPlanSafe(cfg, agent, agent.PlanQueue, forwardmodel.DefaultSurvivalThreshold) {
			agent.PlanQueue = nil
		} else if agent.PlanQueue[0].Type == model.ActionMove {
			if reflection.Score(agent, agent.PlanQueue[0].TargetID) < reflection.AvoidThreshold {
				agent.PlanQueue = nil
			}
		}
	}

	if len(agent.PlanQueue) > 0 {
		next := agent.PlanQueue[0]
		agent.PlanQueue = agent.PlanQueue[1:]
		return next
	}

	if len(p.VisibleTools) > 0 {
		tool := p.VisibleTools[0]
		if !agent.InventoryHas(tool.ID) {
			return model.Action{Type: model.ActionPickup, TargetID: tool.ID}
		}
	}

	if len(p.VisibleObstacles) > 0 {
		for _, obs := range p.VisibleObstacles {
			if obs.ToolRequired != "" && agent.InventoryTool(obs.ToolRequired) == nil {
				continue
			}
			if obs.RequiredAgents > 1 {
				agentsHere := 1
				for _, va := range p.VisibleAgents {
					if va.Distance == 0 {
						agentsHere++
					}
				}
				if agentsHere < obs.RequiredAgents {
					return model.Action{Type: model.ActionCommunicate, TargetID: "PUZZLE_HELP:" + obs.ID}
				}
			}
			return model.Action{Type: model.ActionUse, TargetID: obs.ID}
		}
	}

	if activeGoal.Type == goals.GoalSurvival {
		if newPlan := planner.GeneratePlan(agent); len(newPlan) > 0 {
			if forwardmodel.IsPlanSafe(cfg, agent, newPlan, forwardmodel.DefaultSurvivalThreshold) {
				agent.PlanQueue = newPlan[1:]
				return newPlan[0]
			}
		}
		if len(p.VisibleFood) > 0 {
			return model.Action{Type: model.ActionConsume, TargetID: p.VisibleFood[0]}
		}
		if len(p.Neighbors) > 0 {
			return chooseMove(agent, p, rng)
		}
	}

	if activeGoal.Type == goals.GoalExplore {
		if agent.HomeLocationID == "" {
			agent.HomeLocationID = p.Location
		}

		if p.Energy > 80 && len(p.VisibleFood) > 0 && p.Location != agent.HomeLocationID {
			return model.Action{Type: model.ActionPickup, TargetID: p.VisibleFood[0]}
		}

		if len(agent.Inventory) > 0 && p.Location == agent.HomeLocationID {
			for _, o := range agent.Inventory {
				if o.Kind == model.ObjectFood {
					return model.Action{Type: model.ActionDrop, TargetID: o.ID}
				}
			}
		}

		if newPlan := planner.GeneratePlan(agent); len(newPlan) > 0 {
			agent.PlanQueue = newPlan[1:]
			return newPlan[0]
		}

		if len(p.Neighbors) > 0 {
			return chooseMove(agent, p, rng)
		}
	}

	if activeGoal.Type == goals.GoalSocial {
		return model.Action{Type: model.ActionWait}
	}

	return model.Action{Type: model.ActionWait}
}

// chooseMove picks a MOVE target among p.Neighbors: it prefers an
// unvisited, doubly-safe (reflection AND forward-model) neighbor,
// falls back to any safe visited one, and otherwise WAITs rather than
// walk into known danger.
func chooseMove(agent *model.Agent, p model.Perception, rng *rand.Rand) model.Action {
	if len(p.Neighbors) == 0 {
		return model.Action{Type: model.ActionWait}
	}

	cfg := physics.DefaultConfig()
	isSafe := func(n string) bool {
		if reflection.Score(agent, n) < reflection.AvoidThreshold {
			return false
		}
		testPlan := []model.Action{{Type: model.ActionMove, TargetID: n}}
		return forwardmodel.IsPlanSafe(cfg, agent, testPlan, 5.0)
	}

	var unvisited, safeNeighbors []string
	for _, n := range p.Neighbors {
		if !isSafe(n) {
			continue
		}
		safeNeighbors = append(safeNeighbors, n)
		if !agent.HasVisited(n) {
			unvisited = append(unvisited, n)
		}
	}

	var target string
	switch {
	case len(unvisited) > 0:
		target = unvisited[rng.Intn(len(unvisited))]
	case len(safeNeighbors) > 0:
		target = safeNeighbors[rng.Intn(len(safeNeighbors))]
	default:
		return model.Action{Type: model.ActionWait}
	}

	return model.Action{Type: model.ActionMove, TargetID: target}
}
