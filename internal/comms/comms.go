// Package comms is the inter-agent communication layer: a transport
// abstraction over Message delivery plus the pure logic for
// processing an inbox and merging a received cognitive map. The
// default transport is in-process and keeps delivery deferred to the
// receiver's next tick.
package comms

import (
	"cogsim/internal/model"
	"cogsim/internal/reflection"
)

// Bus is the transport contract: enqueue a message for a recipient.
// LocalBus satisfies every determinism property test; RedisBus is an
// optional multi-process adapter that forfeits those guarantees the
// moment it crosses a process boundary.
type Bus interface {
	Enqueue(recipientID string, msg *model.Message)
}

// AgentLookup is the minimal world-lookup LocalBus needs; worldmap.World
// satisfies it without either package importing the other.
type AgentLookup interface {
	Agent(id string) (*model.Agent, bool)
}

// LocalBus delivers messages to each recipient's own inbox slice,
// visible starting the recipient's next ProcessMessages call. Enqueue
// only stages messages; Flush moves every staged message into its
// recipient's inbox, and the Simulation calls Flush once per tick
// after every agent has had its turn, so a message sent mid-tick
// can never reach a recipient whose ProcessMessages already ran
// earlier in that same tick.
type LocalBus struct {
	lookup AgentLookup
	staged map[string][]*model.Message
}

// NewLocalBus builds a bus bound to the given agent registry lookup.
func NewLocalBus(lookup AgentLookup) *LocalBus {
	return &LocalBus{lookup: lookup, staged: make(map[string][]*model.Message)}
}

// Enqueue stages msg for recipientID, skipping self-delivery. Staged
// messages are not visible to the recipient until the next Flush.
func (b *LocalBus) Enqueue(recipientID string, msg *model.Message) {
	if recipientID == msg.SenderID {
		return
	}
	if _, ok := b.lookup.Agent(recipientID); !ok {
		return
	}
	b.staged[recipientID] = append(b.staged[recipientID], msg)
}

// Flush moves every staged message into its recipient's inbox and
// clears the staging area.
func (b *LocalBus) Flush() {
	for id, msgs := range b.staged {
		if a, ok := b.lookup.Agent(id); ok {
			a.Inbox = append(a.Inbox, msgs...)
		}
	}
	b.staged = make(map[string][]*model.Message)
}

// Broadcast enqueues an identical message to every agent in
// recipients except the sender.
func Broadcast(bus Bus, sender *model.Agent, recipients []*model.Agent, msg *model.Message) {
	for _, r := range recipients {
		if r.ID == sender.ID {
			continue
		}
		bus.Enqueue(r.ID, msg)
	}
}

// ProcessMessages drains agent's inbox in FIFO order, folding each
// message's effect into the cognitive map, reflection scores, trust,
// and stories, and returns how many were processed.
func ProcessMessages(agent *model.Agent) int {
	count := len(agent.Inbox)
	for _, msg := range agent.Inbox {
		switch msg.Type {
		case model.MessageMapUpdate:
			handleMapUpdate(agent, msg)
		case model.MessageAlarm:
			handleAlarm(agent, msg)
		case model.MessageHelpCall:
			handleHelpCall(agent, msg)
		case model.MessagePuzzleHelp:
			handlePuzzleHelp(agent, msg)
		case model.MessageStory:
			handleStory(agent, msg)
		}
	}
	agent.Inbox = nil
	return count
}

func trustOf(agent *model.Agent, senderID string) float64 {
	if t, ok := agent.TrustScores[senderID]; ok {
		return t
	}
	return 0.5
}

func ensureNode(agent *model.Agent, loc string) *model.CognitiveNode {
	n, ok := agent.CognitiveMap[loc]
	if !ok {
		n = &model.CognitiveNode{}
		agent.CognitiveMap[loc] = n
	}
	return n
}

func clampTrust(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}

func handleMapUpdate(agent *model.Agent, msg *model.Message) {
	trustBoost := 0.05
	for loc, incoming := range msg.MapUpdate {
		known := agent.CognitiveMap[loc]
		if incoming.HasTag(string(model.ObjectFood)) && (known == nil || !known.HasTag(string(model.ObjectFood))) {
			trustBoost += 0.15
		}
	}
	if msg.SenderID != "" {
		current, ok := agent.TrustScores[msg.SenderID]
		if !ok {
			current = 0.5
		}
		agent.TrustScores[msg.SenderID] = clampTrust(current + trustBoost)
	}
	mergeMap(agent, msg.MapUpdate)
}

func handleAlarm(agent *model.Agent, msg *model.Message) {
	if msg.Location == "" {
		return
	}
	if trustOf(agent, msg.SenderID) >= 0.5 {
		reflection.UpdateScore(agent, msg.Location, -2.0)
	}
}

func handleHelpCall(agent *model.Agent, msg *model.Message) {
	if msg.Location == "" {
		return
	}
	if trustOf(agent, msg.SenderID) >= 0.5 {
		node := ensureNode(agent, msg.Location)
		node.AddTag(string(model.ObjectCoopFood))
		node.RequesterID = msg.SenderID
		reflection.UpdateScore(agent, msg.Location, 1.0)
	}
}

func handlePuzzleHelp(agent *model.Agent, msg *model.Message) {
	if msg.Location == "" || msg.Obstacle == nil {
		return
	}
	node := ensureNode(agent, msg.Location)
	node.AddTag(string(model.ObjectObstacle))
	node.Obstacles = append(node.Obstacles, *msg.Obstacle)
}

func handleStory(agent *model.Agent, msg *model.Message) {
	if msg.Story == nil {
		return
	}
	if trustOf(agent, msg.SenderID) >= 0.5 {
		node := ensureNode(agent, msg.Story.Location)
		switch msg.Story.Topic {
		case model.StoryHazard:
			reflection.UpdateScore(agent, msg.Story.Location, -1.5)
			node.AddTag(string(model.ObjectHazard))
		case model.StoryFood:
			reflection.UpdateScore(agent, msg.Story.Location, 0.5)
			node.AddTag(string(model.ObjectFood))
		}
		retold := *msg.Story
		retold.Source = msg.SenderID
		agent.Stories = append(agent.Stories, retold)
	}
}

// mergeMap additively merges incoming cognitive-map data into
// agent's map: unknown locations are inserted wholesale; known
// locations gain the union of neighbors and the overwrite of objects
// (last writer wins for tags).
func mergeMap(agent *model.Agent, incoming map[string]*model.CognitiveNode) {
	for loc, info := range incoming {
		current, ok := agent.CognitiveMap[loc]
		if !ok {
			cp := *info
			agent.CognitiveMap[loc] = &cp
			continue
		}
		if len(info.Neighbors) > 0 {
			current.Neighbors = unionStrings(current.Neighbors, info.Neighbors)
		}
		if info.Objects != nil {
			current.Objects = append([]string(nil), info.Objects...)
		}
	}
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	out := append([]string(nil), a...)
	for _, x := range a {
		seen[x] = struct{}{}
	}
	for _, x := range b {
		if _, ok := seen[x]; !ok {
			seen[x] = struct{}{}
			out = append(out, x)
		}
	}
	return out
}
