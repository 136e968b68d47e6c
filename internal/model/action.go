package model

// ActionType is a closed tag for everything an Agent can commit to in
// a tick.
type ActionType string

const (
	ActionWait        ActionType = "WAIT"
	ActionMove        ActionType = "MOVE"
	ActionConsume     ActionType = "CONSUME"
	ActionCommunicate ActionType = "COMMUNICATE"
	ActionPickup      ActionType = "PICKUP"
	ActionDrop        ActionType = "DROP"
	ActionExtract     ActionType = "EXTRACT"
	ActionUse         ActionType = "USE"
)

// Action is the single choice an agent's mind produces each tick.
// TargetID's meaning is Type-dependent: a location id for MOVE, an
// object id for CONSUME/PICKUP/DROP/EXTRACT/USE, and a routing string
// for COMMUNICATE ("ALARM", "HELP_CALL", "PUZZLE_HELP:<id>",
// "STORY:<listener>", a bare listener id, or "" for a full broadcast).
type Action struct {
	Type     ActionType
	TargetID string
}

// Effect is the pure output of Physics: the delta that the
// Simulation, and only the Simulation, is allowed to commit.
type Effect struct {
	AgentID         string
	Action          Action
	Success         bool
	EnergyCost      int
	EnergyGain      int
	NewLocationID   string // set on a successful MOVE
	RemovedObjectID string // set on a successful CONSUME/PICKUP/EXTRACT/USE
	AddedObject     *Object // set on a successful DROP
	Message         string
}
