// Package forwardmodel is an agent's imagination: it projects a
// candidate plan against a copy of the agent's own state, without
// ever consulting the World, to decide whether the plan is safe to
// commit to.
package forwardmodel

import (
	"cogsim/internal/model"
	"cogsim/internal/physics"
)

// DefaultSurvivalThreshold is the minimum projected final energy a
// plan must leave the agent with to count as safe.
const DefaultSurvivalThreshold = 5.0

// SimulatedState is one projected step of a plan.
type SimulatedState struct {
	Energy     float64
	LocationID string
	Alive      bool
}

// SimulatePlan projects plan against a copy of agent's (energy,
// location, alive) state. Each step pays metabolism; MOVE pays the
// move cost and relocates if energy suffices; CONSUME assumes a fixed
// gain because the imagination never looks at the real object value;
// COMMUNICATE pays the comm cost. Projection stops at predicted death,
// and also at a MOVE the remaining energy cannot pay for.
func SimulatePlan(cfg physics.Config, agent *model.Agent, plan []model.Action) []SimulatedState {
	energy := float64(agent.Energy)
	loc := agent.LocationID
	states := []SimulatedState{{Energy: energy, LocationID: loc, Alive: agent.IsAlive}}

	for _, action := range plan {
		energy -= float64(cfg.Metabolism)
		if energy <= 0 {
			states = append(states, SimulatedState{Energy: energy, LocationID: loc, Alive: false})
			break
		}

		switch action.Type {
		case model.ActionMove:
			if energy >= float64(cfg.Move) {
				energy -= float64(cfg.Move)
				loc = action.TargetID
			} else {
				states = append(states, SimulatedState{Energy: energy, LocationID: loc, Alive: true})
				return states
			}
		case model.ActionConsume:
			energy += float64(cfg.ForwardModelConsumeGain)
		case model.ActionCommunicate:
			energy -= float64(cfg.Comm)
		}

		alive := energy > 0
		states = append(states, SimulatedState{Energy: energy, LocationID: loc, Alive: alive})
		if !alive {
			break
		}
	}

	return states
}

// IsPlanSafe reports whether no projected step predicts death and the
// final projected energy is at or above threshold. An empty plan is
// always safe.
func IsPlanSafe(cfg physics.Config, agent *model.Agent, plan []model.Action, threshold float64) bool {
	if len(plan) == 0 {
		return true
	}
	states := SimulatePlan(cfg, agent, plan)
	for _, s := range states {
		if !s.Alive {
			return false
		}
	}
	return states[len(states)-1].Energy >= threshold
}
