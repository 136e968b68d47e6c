// Package goals ranks an agent's strategic objectives for the
// current tick: survival, social obligation, and exploration, ranked by
// numeric priority. Survival's priority grows as energy falls, so just
// under SurvivalEnergyThreshold it can rank below a social or even the
// baseline explore goal.
package goals

import (
	"sort"

	"cogsim/internal/model"
)

// GoalType is the closed set of strategic objective kinds.
type GoalType string

const (
	GoalSurvival GoalType = "SURVIVAL"
	GoalSocial   GoalType = "SOCIAL"
	GoalExplore  GoalType = "EXPLORE"
	GoalLongTerm GoalType = "LONG_TERM"
)

const (
	// SurvivalEnergyThreshold is the energy level below which a
	// survival goal is raised; higher than the Mind's own hard
	// survival cutoff so strategic planning starts worrying earlier.
	SurvivalEnergyThreshold = 40.0
	// RichEnergyThreshold is the energy an agent needs before it will
	// consider helping a needy neighbor.
	RichEnergyThreshold = 70.0
	// NeedyEnergyThreshold is the energy below which a visible agent
	// is considered in need of help.
	NeedyEnergyThreshold = 30.0
	// LeaderTrustThreshold is the trust score above which a visible
	// agent is worth following/imitating as a social goal.
	LeaderTrustThreshold = 0.6
	// SocialHighPriority is the fixed priority assigned to a needy-
	// friend social goal.
	SocialHighPriority = 50.0
	// LeaderFollowPriority is the fixed priority assigned to a
	// trusted-leader social goal.
	LeaderFollowPriority = 30.0
	// ExploreBasePriority is the default fallback priority; every
	// agent always has at least this much reason to explore.
	ExploreBasePriority = 10.0
)

// Goal is one ranked strategic objective.
type Goal struct {
	Type     GoalType
	Priority float64
	TargetID string
}

// EvaluateGoals builds and priority-sorts (descending) every goal
// that applies to agent given p, always including a baseline EXPLORE
// goal so the slice is never empty.
func EvaluateGoals(agent *model.Agent, p model.Perception) []Goal {
	var out []Goal

	if float64(p.Energy) < SurvivalEnergyThreshold {
		priority := (SurvivalEnergyThreshold - float64(p.Energy)) * 2.5
		out = append(out, Goal{Type: GoalSurvival, Priority: priority})
	}

	if float64(p.Energy) > RichEnergyThreshold {
		for _, va := range p.VisibleAgents {
			if va.Energy < int(NeedyEnergyThreshold) {
				out = append(out, Goal{Type: GoalSocial, Priority: SocialHighPriority, TargetID: va.ID})
			}
		}
	}

	for _, va := range p.VisibleAgents {
		trust, ok := agent.TrustScores[va.ID]
		if !ok {
			trust = 0.5
		}
		if trust > LeaderTrustThreshold {
			out = append(out, Goal{Type: GoalSocial, Priority: LeaderFollowPriority, TargetID: va.ID})
		}
	}

	out = append(out, Goal{Type: GoalExplore, Priority: ExploreBasePriority})

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// SelectTopGoal returns the highest-priority goal, falling back to a
// zero-priority EXPLORE goal if EvaluateGoals somehow returns nothing.
func SelectTopGoal(agent *model.Agent, p model.Perception) Goal {
	all := EvaluateGoals(agent, p)
	if len(all) == 0 {
		return Goal{Type: GoalExplore, Priority: 0}
	}
	return all[0]
}
