// Package social implements trust, reputation, altruism, imitation
// and story-telling: the layer that turns a list of perceived agents
// into cooperative or self-interested decisions, folded from the
// reference relationship/emotion/interaction packages' trust-and-
// reputation shape.
package social

import (
	"sort"

	"cogsim/internal/model"
)

const (
	// InitialTrust is the trust value a newly-observed agent starts
	// with.
	InitialTrust = 0.5
	// ImitationTrustThreshold is the stricter of the two reference
	// values (0.6 vs 0.7) — the more conservative bar wins.
	ImitationTrustThreshold = 0.7
	// AltruismEnergyThreshold: an agent will only help others once it
	// is this well-fed itself.
	AltruismEnergyThreshold = 70.0
	// NeedyEnergyThreshold: a neighbor below this energy is considered
	// in need of help.
	NeedyEnergyThreshold = 30.0
	// StoryDedupeWindow: don't re-mint a story about the same
	// (topic, location) within this many ticks.
	StoryDedupeWindow = 20
)

// UpdateSeenAgent records (or refreshes) what agent knows about
// neighborID, and seeds its trust score on first contact.
func UpdateSeenAgent(agent *model.Agent, neighborID string, obs model.SocialObservation) {
	agent.SocialMap[neighborID] = &obs
	if _, ok := agent.TrustScores[neighborID]; !ok {
		agent.TrustScores[neighborID] = InitialTrust
	}
}

// RecordInteraction nudges trust in otherID by delta, clamped to
// [0,1].
func RecordInteraction(agent *model.Agent, otherID string, delta float64) {
	current, ok := agent.TrustScores[otherID]
	if !ok {
		current = InitialTrust
	}
	current += delta
	if current > 1.0 {
		current = 1.0
	}
	if current < 0.0 {
		current = 0.0
	}
	agent.TrustScores[otherID] = current
}

// UpdateReputation nudges otherID's reputation by delta, clamped to
// [-2,2], and folds half the delta into trust too.
func UpdateReputation(agent *model.Agent, otherID string, delta float64) {
	current := agent.Reputations[otherID]
	current += delta
	if current > 2.0 {
		current = 2.0
	}
	if current < -2.0 {
		current = -2.0
	}
	agent.Reputations[otherID] = current
	RecordInteraction(agent, otherID, delta*0.5)
}

// IdentifyHighestValueInfo returns the first known FOOD location in
// the agent's cognitive map, suitable as the payload of a targeted
// altruistic share. The empty string means nothing to share.
func IdentifyHighestValueInfo(agent *model.Agent) string {
	for _, loc := range sortedMapKeys(agent.CognitiveMap) {
		if agent.CognitiveMap[loc].HasTag(string(model.ObjectFood)) {
			return loc
		}
	}
	return ""
}

// DecideCooperation looks for a visible (co-located or one-hop),
// trusted, needy neighbor
// to target an altruistic COMMUNICATE at. Returns "" if none
// qualifies or the agent itself can't afford to help.
func DecideCooperation(agent *model.Agent, p model.Perception) string {
	if p.Energy < int(AltruismEnergyThreshold) {
		return ""
	}
	for _, va := range p.VisibleAgents {
		trust, ok := agent.TrustScores[va.ID]
		if !ok {
			trust = InitialTrust
		}
		if va.Energy < int(NeedyEnergyThreshold) && trust >= InitialTrust {
			return va.ID
		}
	}
	return ""
}

// ObservationToImitate returns the location of a trusted, one-hop
// neighbor not already known to be dangerous, for social-learning
// imitation moves. isSafe should consult the reflection layer.
func ObservationToImitate(agent *model.Agent, p model.Perception, isSafe func(loc string) bool) string {
	for _, va := range p.VisibleAgents {
		if va.Distance != 1 {
			continue
		}
		trust, ok := agent.TrustScores[va.ID]
		if !ok {
			trust = InitialTrust
		}
		if trust >= ImitationTrustThreshold && isSafe(va.Location) {
			return va.Location
		}
	}
	return ""
}

// GenerateStory mints a HAZARD or FOOD story from the current
// perception if the observation is impactful and not a duplicate of
// one told about the same (topic, location) within StoryDedupeWindow
// ticks.
func GenerateStory(agent *model.Agent, p model.Perception) {
	if len(p.VisibleHazards) > 0 {
		mintIfFresh(agent, model.StoryHazard, p.Location, p.Tick)
	}
	if len(p.VisibleCoopFood) > 0 {
		mintIfFresh(agent, model.StoryFood, p.Location, p.Tick)
	}
}

func mintIfFresh(agent *model.Agent, topic model.StoryTopic, loc string, tick int) {
	for _, s := range agent.Stories {
		if s.Topic == topic && s.Location == loc && s.Tick > tick-StoryDedupeWindow {
			return
		}
	}
	agent.Stories = append(agent.Stories, model.Story{
		Topic:    topic,
		Location: loc,
		Tick:     tick,
		Source:   agent.ID,
		Veracity: 1.0,
	})
}

// SelectStoryToTell returns the most recent story the agent knows, or
// nil if it has none to tell.
func SelectStoryToTell(agent *model.Agent) *model.Story {
	if len(agent.Stories) == 0 {
		return nil
	}
	s := agent.Stories[len(agent.Stories)-1]
	return &s
}

func sortedMapKeys(m map[string]*model.CognitiveNode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion order isn't tracked on the map itself; a lexical sort
	// keeps this deterministic without needing one.
	sort.Strings(keys)
	return keys
}
