// Package logging wires the simulation's structured developer-facing
// logs, distinct from the eventlog package's external event-stream
// sink. Adapted from the reference backend's global zerolog logger
// and context-scoped helpers, retargeted from per-HTTP-request
// correlation IDs to per-tick/per-agent simulation context.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// ForTick returns a logger pre-scoped with the current tick number, so
// every event a tick produces carries it without repeating the field.
func ForTick(tick int) zerolog.Logger {
	return log.With().Int("tick", tick).Logger()
}

// ForAgent further scopes logger with an agent id.
func ForAgent(logger zerolog.Logger, agentID string) zerolog.Logger {
	return logger.With().Str("agent_id", agentID).Logger()
}

// LogGoalSwitch records an agent switching its active strategic goal.
func LogGoalSwitch(logger zerolog.Logger, oldGoal, newGoal string) {
	logger.Info().Str("old_goal", oldGoal).Str("new_goal", newGoal).Msg("goal switch")
}

// LogImaginationAbort records a plan discarded by the forward model.
func LogImaginationAbort(logger zerolog.Logger, reason string) {
	logger.Info().Str("reason", reason).Msg("imagination abort")
}

// LogDeath records an agent's starvation death.
func LogDeath(logger zerolog.Logger) {
	logger.Warn().Msg("agent died of starvation")
}

// LogDecision records the action an agent committed to.
func LogDecision(logger zerolog.Logger, actionType, targetID string) {
	logger.Debug().Str("action", actionType).Str("target", targetID).Msg("decision")
}
