// Package model holds the shared domain types that every cognitive
// package (world, physics, planner, mind, social, comms, ...) builds
// on, so that none of them need to import each other just to agree on
// what an Agent or an Object is.
package model

import "github.com/google/uuid"

// ObjectKind is a closed tag for the passive objects that can sit in
// a location or an inventory.
type ObjectKind string

const (
	ObjectFood     ObjectKind = "FOOD"
	ObjectBarrier  ObjectKind = "BARRIER"
	ObjectTool     ObjectKind = "TOOL"
	ObjectHazard   ObjectKind = "HAZARD"
	ObjectCoopFood ObjectKind = "COOP_FOOD"
	ObjectObstacle ObjectKind = "OBSTACLE"
)

// NewID generates an opaque entity identifier. Entities never parse
// or compare on the structure of this string; it is a hash key.
func NewID() string {
	return uuid.New().String()
}

// Object is a passive, ownable thing: food, a hazard, a tool, an
// obstacle, or a cooperative resource.
type Object struct {
	ID             string
	Kind           ObjectKind
	Value          int    // energy for FOOD/COOP_FOOD, damage for HAZARD
	LocationID     string // "" while held in an inventory
	RequiredAgents int    // COOP_FOOD / OBSTACLE: co-located agents needed, default 1
	ToolRequired   string // OBSTACLE: tool_type that unlocks it, "" if none
	ToolType       string // TOOL: the specific tool name this object provides
}

// NewObject builds an Object with a fresh id and RequiredAgents
// defaulted to 1, matching the reference dataclass default.
func NewObject(kind ObjectKind, value int) *Object {
	return &Object{
		ID:             NewID(),
		Kind:           kind,
		Value:          value,
		RequiredAgents: 1,
	}
}
