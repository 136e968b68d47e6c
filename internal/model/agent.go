package model

// MemoryWindow bounds the short-term perception buffer.
const MemoryWindow = 10

// Agent is the full cognitive aggregate: physical state plus every
// layer of belief (cognitive map, trust, reputation, stories,
// reflection scores, plans) that the mind pipeline reads and writes.
type Agent struct {
	ID              string
	Name            string
	LocationID      string
	Energy          int
	IsAlive         bool
	LastTickUpdated int

	Memory           []Perception
	VisitedLocations map[string]struct{}

	CognitiveMap map[string]*CognitiveNode
	Inbox        []*Message

	ActionHistory   []HistoryEntry
	ReflectionScore map[string]float64

	PlanQueue     []Action
	PlannedTarget string

	SocialMap   map[string]*SocialObservation
	TrustScores map[string]float64
	Reputations map[string]float64

	CurrentGoal string
	GoalHistory []string

	SpatialPatterns map[string]*SpatialStats
	Stories         []Story

	Inventory      []*Object
	HomeLocationID string

	LastAction *Action

	// Skills are per-agent multipliers the Planner applies to goal
	// base scores, defaulted to 1.0 for EXTRACT/USE/EXPLORE by NewAgent
	// so new skill kinds never need special-cased zero-value handling.
	Skills map[string]float64
}

// NewAgent constructs a freshly-born, alive agent at loc with the
// default skill multipliers and an EXPLORE starting goal.
func NewAgent(name, locationID string, energy int) *Agent {
	return &Agent{
		ID:               NewID(),
		Name:             name,
		LocationID:       locationID,
		Energy:           energy,
		IsAlive:          true,
		VisitedLocations: make(map[string]struct{}),
		CognitiveMap:     make(map[string]*CognitiveNode),
		ReflectionScore:  make(map[string]float64),
		SocialMap:        make(map[string]*SocialObservation),
		TrustScores:      make(map[string]float64),
		Reputations:      make(map[string]float64),
		CurrentGoal:      "EXPLORE",
		SpatialPatterns:  make(map[string]*SpatialStats),
		Skills: map[string]float64{
			"EXTRACT": 1.0,
			"USE":     1.0,
			"EXPLORE": 1.0,
		},
	}
}

// SkillOrDefault returns the agent's multiplier for name, or 1.0 if
// never set.
func (a *Agent) SkillOrDefault(name string) float64 {
	if v, ok := a.Skills[name]; ok {
		return v
	}
	return 1.0
}

// HasVisited reports whether loc is in the visited set.
func (a *Agent) HasVisited(loc string) bool {
	_, ok := a.VisitedLocations[loc]
	return ok
}

// RememberPerception appends p to short-term memory, trimming to
// MemoryWindow.
func (a *Agent) RememberPerception(p Perception) {
	a.Memory = append(a.Memory, p)
	if len(a.Memory) > MemoryWindow {
		a.Memory = a.Memory[len(a.Memory)-MemoryWindow:]
	}
}

// PreviousPerception returns the perception before the most recent
// one, or nil if there isn't one yet.
func (a *Agent) PreviousPerception() *Perception {
	if len(a.Memory) < 2 {
		return nil
	}
	return &a.Memory[len(a.Memory)-2]
}

// InventoryHas reports whether an object with id is currently carried.
func (a *Agent) InventoryHas(id string) bool {
	for _, o := range a.Inventory {
		if o.ID == id {
			return true
		}
	}
	return false
}

// InventoryTool returns the first carried TOOL object with the given
// tool type, or nil.
func (a *Agent) InventoryTool(toolType string) *Object {
	for _, o := range a.Inventory {
		if o.Kind == ObjectTool && o.ToolType == toolType {
			return o
		}
	}
	return nil
}
