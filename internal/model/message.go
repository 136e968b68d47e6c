package model

// MessageType is a closed tag for the inter-agent communication
// channel. PUZZLE_HELP and STORY are additions over the legacy
// MAP_UPDATE/ALARM/HELP_CALL set.
type MessageType string

const (
	MessageMapUpdate  MessageType = "MAP_UPDATE"
	MessageAlarm      MessageType = "ALARM"
	MessageHelpCall   MessageType = "HELP_CALL"
	MessagePuzzleHelp MessageType = "PUZZLE_HELP"
	MessageStory      MessageType = "STORY"
)

// Message is what one agent posts into another's inbox. Only the
// fields relevant to Type are populated; the rest stay zero.
type Message struct {
	SenderID string
	Tick     int
	Type     MessageType

	// MAP_UPDATE
	MapUpdate map[string]*CognitiveNode

	// ALARM / HELP_CALL / PUZZLE_HELP
	Location string
	PuzzleID string
	Obstacle *ObstacleInfo

	// STORY
	Story *Story
}
