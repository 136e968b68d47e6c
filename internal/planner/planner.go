// Package planner turns an agent's cognitive map into a concrete,
// scored multi-step MOVE plan. Candidate goals are
// collected from known objects, map frontiers, staleness, and spatial
// statistics; the best reachable one (skipping locations Meta-
// Reflection considers unsafe) wins and its shortest path becomes the
// plan.
package planner

import (
	"sort"

	"cogsim/internal/memoryanalyzer"
	"cogsim/internal/model"
	"cogsim/internal/reflection"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// StaleThreshold is how many ticks without an update before a known
// location counts as a stale frontier worth re-checking.
const StaleThreshold = 50

// goalCandidate is one (score, target, kind) triple collected while
// scanning the cognitive map, before path cost is subtracted.
type goalCandidate struct {
	baseScore float64
	targetID  string
	kind      string
}

// GeneratePlan walks agent's cognitive map for goal candidates, scores
// each by skill-weighted base value minus path length, and returns the
// MOVE sequence to the single best reachable target. An empty plan
// means nothing worth doing was found or reachable.
func GeneratePlan(agent *model.Agent) []model.Action {
	if len(agent.CognitiveMap) == 0 {
		return nil
	}

	candidates := collectGoalCandidates(agent)
	if len(candidates) == 0 {
		if loc := memoryanalyzer.PredictResourceLocation(agent); loc != "" && loc != agent.LocationID {
			candidates = append(candidates, goalCandidate{baseScore: 30, targetID: loc, kind: "PROBABLE_FOOD"})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	paths := reachablePaths(agent)

	best := -1.0
	var bestPath []string
	for _, c := range candidates {
		path, ok := paths[c.targetID]
		if !ok {
			continue
		}
		score := c.baseScore - float64(len(path))
		if score > best {
			best = score
			bestPath = path
		}
	}

	plan := make([]model.Action, 0, len(bestPath))
	for _, step := range bestPath {
		plan = append(plan, model.Action{Type: model.ActionMove, TargetID: step})
	}
	return plan
}

// reachablePaths builds an ephemeral directed graph from agent's
// cognitive map and BFS's it from the current location, refusing to
// expand through any location Meta-Reflection scores as unsafe. It
// returns, for every reached location, the MOVE-step path to it.
func reachablePaths(agent *model.Agent) map[string][]string {
	g := core.NewGraph(core.WithDirected(true))
	_ = g.AddVertex(agent.LocationID)
	for loc, node := range agent.CognitiveMap {
		_ = g.AddVertex(loc)
		for _, n := range node.Neighbors {
			_ = g.AddVertex(n)
			_, _ = g.AddEdge(loc, n, 0)
		}
	}

	result, err := bfs.BFS(g, agent.LocationID, bfs.WithFilterNeighbor(func(_, neighbor string) bool {
		return reflection.IsSafe(agent, neighbor)
	}))
	if err != nil {
		return nil
	}

	paths := make(map[string][]string, len(result.Order))
	for _, id := range result.Order {
		if id == agent.LocationID {
			continue
		}
		path, err := result.PathTo(id)
		if err != nil {
			continue
		}
		paths[id] = path[1:] // drop the start vertex itself
	}
	return paths
}

func collectGoalCandidates(agent *model.Agent) []goalCandidate {
	var out []goalCandidate

	extractSkill := agent.SkillOrDefault("EXTRACT")
	useSkill := agent.SkillOrDefault("USE")
	exploreSkill := agent.SkillOrDefault("EXPLORE")

	locs := sortedCognitiveMapKeys(agent.CognitiveMap)

	for _, loc := range locs {
		node := agent.CognitiveMap[loc]
		if loc == agent.LocationID {
			continue
		}

		if node.HasTag(string(model.ObjectFood)) {
			out = append(out, goalCandidate{baseScore: 100 * extractSkill, targetID: loc, kind: "FOOD"})
		}

		if node.HasTag(string(model.ObjectCoopFood)) {
			priority := 120.0
			if node.RequesterID != "" {
				priority += agent.Reputations[node.RequesterID] * 20
			}
			out = append(out, goalCandidate{baseScore: priority * extractSkill, targetID: loc, kind: "COOP_FOOD"})
		}

		if node.HasTag(string(model.ObjectObstacle)) {
			for _, obs := range node.Obstacles {
				if obs.ToolRequired == "" {
					out = append(out, goalCandidate{baseScore: 90, targetID: loc, kind: "OBSTACLE"})
					continue
				}
				if agent.InventoryTool(obs.ToolRequired) != nil {
					out = append(out, goalCandidate{baseScore: 110 * useSkill, targetID: loc, kind: "OBSTACLE"})
					continue
				}
				if toolLoc := findToolLocation(agent, obs.ToolRequired); toolLoc != "" {
					target := toolLoc
					if toolLoc == agent.LocationID {
						target = loc
					}
					out = append(out, goalCandidate{baseScore: 115 * useSkill, targetID: target, kind: "GET_TOOL"})
				}
			}
		}
	}

	for _, f := range frontiers(agent) {
		score := 50*exploreSkill + terrainDesirability(f)*terrainBonusWeight
		out = append(out, goalCandidate{baseScore: score, targetID: f, kind: "FRONTIER"})
	}

	for _, loc := range locs {
		node := agent.CognitiveMap[loc]
		if loc == agent.LocationID {
			continue
		}
		if agent.LastTickUpdated-node.LastTick > StaleThreshold {
			out = append(out, goalCandidate{baseScore: 45, targetID: loc, kind: "STALE_FRONTIER"})
		}
	}

	statsLocs := make([]string, 0, len(agent.SpatialPatterns))
	for loc := range agent.SpatialPatterns {
		statsLocs = append(statsLocs, loc)
	}
	sort.Strings(statsLocs)

	for _, loc := range statsLocs {
		if loc == agent.LocationID {
			continue
		}
		if _, known := agent.CognitiveMap[loc]; !known {
			continue
		}
		stats := agent.SpatialPatterns[loc]
		visits := stats.TotalVisits
		if visits < 1 {
			visits = 1
		}
		if stats.FoodHits/visits > 0.3 {
			out = append(out, goalCandidate{baseScore: 75, targetID: loc, kind: "LIKELY_REGION"})
		}
	}

	return out
}

// sortedCognitiveMapKeys returns agent's known location ids in lexical
// order, so candidate collection never depends on Go's randomized map
// iteration.
func sortedCognitiveMapKeys(m map[string]*model.CognitiveNode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// findToolLocation scans the cognitive map, in lexical location-id
// order, for the first location known to carry a tool of the
// given type.
func findToolLocation(agent *model.Agent, toolType string) string {
	for _, loc := range sortedCognitiveMapKeys(agent.CognitiveMap) {
		for _, t := range agent.CognitiveMap[loc].Tools {
			if t.ToolType == toolType {
				return loc
			}
		}
	}
	return ""
}

// frontiers returns every neighbor referenced by a known cognitive-map
// location that is not itself a known location yet, in a stable order
// derived from lexical location-id scanning.
func frontiers(agent *model.Agent) []string {
	known := agent.CognitiveMap
	seen := make(map[string]struct{})
	var out []string
	for _, loc := range sortedCognitiveMapKeys(known) {
		node := known[loc]
		for _, n := range node.Neighbors {
			if _, ok := known[n]; ok {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
