// Package worldmap holds the simulation's single source of truth:
// the static location graph and the registry of every entity placed
// in it. It is adapted from the registry-with-copy-semantics pattern
// the reference codebase uses for its WorldState registry, narrowed
// to the single authoritative graph this domain actually needs.
package worldmap

import (
	"cogsim/internal/model"
)

// Location is a static node in the world graph: its neighbor sequence
// (insertion order, authoritative) and the objects currently indexed
// there (insertion order).
type Location struct {
	ID        string
	Neighbors []string
	ObjectIDs []string
}

// World is the sole owner of authoritative simulation state. Nothing
// outside the Simulation's commit step is allowed to mutate it.
type World struct {
	locations map[string]*Location
	entities  map[string]*model.Object
	agents    map[string]*model.Agent
	agentIDs  []string // insertion order, authoritative for tick iteration
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		locations: make(map[string]*Location),
		entities:  make(map[string]*model.Object),
		agents:    make(map[string]*model.Agent),
	}
}

// AddLocation registers a location node. World performs no validation
// of graph symmetry; dangling or duplicate neighbor ids are accepted
// and simply never resolve to anything useful later.
func (w *World) AddLocation(id string, neighbors []string) {
	cp := make([]string, len(neighbors))
	copy(cp, neighbors)
	w.locations[id] = &Location{ID: id, Neighbors: cp}
}

// AddAgent registers an agent in the live agent registry, preserving
// insertion order for deterministic tick iteration.
func (w *World) AddAgent(a *model.Agent) {
	if _, exists := w.agents[a.ID]; !exists {
		w.agentIDs = append(w.agentIDs, a.ID)
	}
	w.agents[a.ID] = a
}

// AddObject registers an object and, if it already carries a
// location id that exists in the graph, indexes it there.
func (w *World) AddObject(o *model.Object) {
	w.entities[o.ID] = o
	if o.LocationID != "" {
		if loc, ok := w.locations[o.LocationID]; ok {
			loc.ObjectIDs = append(loc.ObjectIDs, o.ID)
		}
	}
}

// Agent looks up a live-or-dead agent by id.
func (w *World) Agent(id string) (*model.Agent, bool) {
	a, ok := w.agents[id]
	return a, ok
}

// Agents returns agents in insertion order — the iteration order the
// Simulation loop uses every tick.
func (w *World) Agents() []*model.Agent {
	out := make([]*model.Agent, 0, len(w.agentIDs))
	for _, id := range w.agentIDs {
		out = append(out, w.agents[id])
	}
	return out
}

// Entity looks up any registered object by id.
func (w *World) Entity(id string) (*model.Object, bool) {
	o, ok := w.entities[id]
	return o, ok
}

// Neighbors returns the authoritative neighbor list for loc, or nil
// if loc is unknown.
func (w *World) Neighbors(loc string) []string {
	l, ok := w.locations[loc]
	if !ok {
		return nil
	}
	return l.Neighbors
}

// ObjectsAt returns the live Object instances currently indexed at
// loc, in insertion order.
func (w *World) ObjectsAt(loc string) []*model.Object {
	l, ok := w.locations[loc]
	if !ok {
		return nil
	}
	out := make([]*model.Object, 0, len(l.ObjectIDs))
	for _, id := range l.ObjectIDs {
		if o, ok := w.entities[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// AgentsAt returns the alive agents currently located at loc.
func (w *World) AgentsAt(loc string) []*model.Agent {
	var out []*model.Agent
	for _, id := range w.agentIDs {
		a := w.agents[id]
		if a.IsAlive && a.LocationID == loc {
			out = append(out, a)
		}
	}
	return out
}

// HasLocation reports whether loc is a known node.
func (w *World) HasLocation(loc string) bool {
	_, ok := w.locations[loc]
	return ok
}

// MoveAgent directly relocates an agent. Only the Simulation, while
// committing an Effect, may call this.
func (w *World) MoveAgent(agentID, newLoc string) {
	if a, ok := w.agents[agentID]; ok {
		a.LocationID = newLoc
	}
}

// UnlistObject removes an object from its location's index and sets
// its location to "" (held in limbo or about to enter an inventory),
// while keeping it in the entity registry.
func (w *World) UnlistObject(objectID string) {
	o, ok := w.entities[objectID]
	if !ok {
		return
	}
	if o.LocationID != "" {
		if loc, ok := w.locations[o.LocationID]; ok {
			loc.ObjectIDs = removeID(loc.ObjectIDs, objectID)
		}
	}
	o.LocationID = ""
}

// AddObjectToLocation re-lists an already-registered object at loc
// (used when an agent drops an inventory item).
func (w *World) AddObjectToLocation(objectID, loc string) {
	o, ok := w.entities[objectID]
	if !ok {
		return
	}
	l, ok := w.locations[loc]
	if !ok {
		return
	}
	o.LocationID = loc
	if !containsID(l.ObjectIDs, objectID) {
		l.ObjectIDs = append(l.ObjectIDs, objectID)
	}
}

// RemoveObject unlists and deletes an object entirely (consumed,
// extracted, or used up).
func (w *World) RemoveObject(objectID string) {
	w.UnlistObject(objectID)
	delete(w.entities, objectID)
}

func containsID(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
