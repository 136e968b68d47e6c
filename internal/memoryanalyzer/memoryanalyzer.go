// Package memoryanalyzer tracks long-horizon, per-location visit and
// food-hit frequency so the Planner has a probabilistic fallback goal
// even when the cognitive map has nothing concrete to chase. It keeps
// two running counters per location, visits and food hits, with no
// recency weighting or decay.
package memoryanalyzer

import (
	"sort"

	"cogsim/internal/model"
)

// UpdatePatterns increments the visit counter for the perceived
// location, and the food-hit counter too if food was visible.
func UpdatePatterns(agent *model.Agent, p model.Perception) {
	stats, ok := agent.SpatialPatterns[p.Location]
	if !ok {
		stats = &model.SpatialStats{}
		agent.SpatialPatterns[p.Location] = stats
	}
	stats.TotalVisits++
	if len(p.VisibleFood) > 0 {
		stats.FoodHits++
	}
}

// FoodHitRate returns the historical food-hit ratio for loc, 0 if
// never visited.
func FoodHitRate(agent *model.Agent, loc string) float64 {
	stats, ok := agent.SpatialPatterns[loc]
	if !ok || stats.TotalVisits == 0 {
		return 0
	}
	return stats.FoodHits / stats.TotalVisits
}

// PredictResourceLocation returns the location with the highest
// historical food-hit ratio, breaking ties deterministically by
// scanning location ids in sorted order and keeping only a strictly
// greater rate, independent of Go's randomized map iteration.
func PredictResourceLocation(agent *model.Agent) string {
	ids := make([]string, 0, len(agent.SpatialPatterns))
	for loc := range agent.SpatialPatterns {
		ids = append(ids, loc)
	}
	sort.Strings(ids)

	best := ""
	bestRate := -1.0
	for _, loc := range ids {
		stats := agent.SpatialPatterns[loc]
		if stats.TotalVisits < 1 {
			continue
		}
		rate := stats.FoodHits / stats.TotalVisits
		if rate > bestRate && rate > 0 {
			bestRate = rate
			best = loc
		}
	}
	return best
}
