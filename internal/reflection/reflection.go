// Package reflection is an agent's meta-cognition: it mines recent
// action history for repeated, unproductive moves and turns them into
// per-location aversion scores, and it is the landing spot for
// external warnings (alarms, hazard stories) that want to push a
// location's score down without waiting for repetition to prove it.
// Scores accumulate and never decay back toward neutral on their own.
package reflection

import "cogsim/internal/model"

const (
	// Window is how many recent history entries Reflect inspects.
	Window = 20
	// RepetitionThreshold is how many times a MOVE target can appear
	// in the window before it is considered overused.
	RepetitionThreshold = 3
	// InefficiencyPenalty is subtracted from an overused target's
	// score each time Reflect runs.
	InefficiencyPenalty = 0.5
	// AvoidThreshold is the score below which a location is treated
	// as unsafe by planning and movement.
	AvoidThreshold = -0.5
)

// Reflect inspects the last Window history entries and penalizes any
// MOVE target visited more than RepetitionThreshold times.
func Reflect(agent *model.Agent) {
	history := agent.ActionHistory
	if len(history) > Window {
		history = history[len(history)-Window:]
	}
	if len(history) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, entry := range history {
		if entry.Action.Type == model.ActionMove {
			counts[entry.Action.TargetID]++
		}
	}

	for loc, count := range counts {
		if count > RepetitionThreshold {
			agent.ReflectionScore[loc] -= InefficiencyPenalty
		}
	}
}

// Score returns the aversion score for loc, defaulting to 0.
func Score(agent *model.Agent, loc string) float64 {
	return agent.ReflectionScore[loc]
}

// UpdateScore applies an external delta (e.g. from an ALARM or a
// hazard STORY) to loc's score.
func UpdateScore(agent *model.Agent, loc string, delta float64) {
	agent.ReflectionScore[loc] += delta
}

// IsSafe reports whether loc's score is at or above AvoidThreshold.
func IsSafe(agent *model.Agent, loc string) bool {
	return Score(agent, loc) >= AvoidThreshold
}
