// Package simulation is the outermost orchestrator: it owns the
// world, the single seeded PRNG, and the per-tick loop that drives
// every agent through metabolism, message delivery, cognition, and
// committed effects. It is the only component
// permitted to mutate World or Agent state.
package simulation

import (
	"context"
	"math/rand"
	"strings"

	"cogsim/internal/comms"
	"cogsim/internal/eventlog"
	"cogsim/internal/logging"
	"cogsim/internal/metrics"
	"cogsim/internal/mind"
	"cogsim/internal/model"
	"cogsim/internal/physics"
	"cogsim/internal/reflection"
	"cogsim/internal/simerrors"
	"cogsim/internal/social"
	"cogsim/internal/worldmap"

	"github.com/rs/zerolog"
)

// Simulation owns the world, rules configuration, message bus, and
// every optional reporting sink.
type Simulation struct {
	World     *worldmap.World
	Config    physics.Config
	Bus       comms.Bus
	Recorder  eventlog.Recorder
	Metrics   *metrics.Metrics
	TickCount int

	rng *rand.Rand
}

// New builds a Simulation over w, seeded deterministically. A nil
// recorder defaults to eventlog.NoopRecorder and a nil metrics to an
// unregistered metrics.Metrics (safe to use, just never scraped).
func New(w *worldmap.World, seed int64, recorder eventlog.Recorder, m *metrics.Metrics) *Simulation {
	if recorder == nil {
		recorder = eventlog.NoopRecorder{}
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &Simulation{
		World:    w,
		Config:   physics.DefaultConfig(),
		Bus:      comms.NewLocalBus(w),
		Recorder: recorder,
		Metrics:  m,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Run executes up to maxTicks ticks, stopping early once every agent
// is dead.
func (s *Simulation) Run(ctx context.Context, maxTicks int) error {
	if maxTicks <= 0 {
		return simerrors.ErrInvalidTickCount
	}
	if len(s.World.Agents()) == 0 {
		return simerrors.ErrNoAgents
	}

	for i := 0; i < maxTicks; i++ {
		if err := s.Tick(ctx); err != nil {
			return err
		}
		if !s.anyAlive() {
			break
		}
	}
	return nil
}

func (s *Simulation) anyAlive() bool {
	for _, a := range s.World.Agents() {
		if a.IsAlive {
			return true
		}
	}
	return false
}

// Tick executes one atomic pass over every agent: metabolism, inbox
// drain, perceive, decide, resolve, commit, and reflect, in that
// order, then advances TickCount.
func (s *Simulation) Tick(ctx context.Context) error {
	tickLog := logging.ForTick(s.TickCount)
	agents := s.World.Agents()
	alive := 0

	for _, agent := range agents {
		agent.LastTickUpdated = s.TickCount
		if !agent.IsAlive {
			continue
		}
		alive++

		agentLog := logging.ForAgent(tickLog, agent.ID)

		metabolicEffect := physics.TickMetabolism(s.Config, s.World, agent)
		s.applyEffect(ctx, metabolicEffect)
		if !agent.IsAlive {
			continue
		}

		processed := comms.ProcessMessages(agent)
		if processed > 0 {
			s.Metrics.MessagesProcessed.Add(float64(processed))
			_ = s.Recorder.Record(ctx, eventlog.Record{
				Tick: s.TickCount, Kind: eventlog.EventInfoUpdate, AgentID: agent.ID,
				Payload: map[string]any{"messages": processed},
			})
		}

		perception := mind.Perceive(s.World, agent)
		_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventPerception, AgentID: agent.ID})

		wasPlanning := len(agent.PlanQueue) > 0
		oldGoal := agent.CurrentGoal

		action := mind.Decide(agent, perception, s.rng)
		agent.LastAction = &action

		if oldGoal != agent.CurrentGoal {
			logging.LogGoalSwitch(agentLog, oldGoal, agent.CurrentGoal)
			_ = s.Recorder.Record(ctx, eventlog.Record{
				Tick: s.TickCount, Kind: eventlog.EventGoalSwitch, AgentID: agent.ID,
				Payload: map[string]any{"old": oldGoal, "new": agent.CurrentGoal},
			})
		}
		if wasPlanning && len(agent.PlanQueue) == 0 {
			logging.LogImaginationAbort(agentLog, "predicted failure")
			_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventImaginationAbort, AgentID: agent.ID})
			s.Metrics.PlanAbortsTotal.Inc()
		}
		if !wasPlanning && len(agent.PlanQueue) > 0 {
			_ = s.Recorder.Record(ctx, eventlog.Record{
				Tick: s.TickCount, Kind: eventlog.EventPlanGenerated, AgentID: agent.ID,
				Payload: map[string]any{"steps": len(agent.PlanQueue) + 1},
			})
		}

		logging.LogDecision(agentLog, string(action.Type), action.TargetID)

		actionEffect := physics.Resolve(s.Config, s.World, agent, action)

		if !actionEffect.Success && len(agent.PlanQueue) > 0 {
			agent.PlanQueue = nil
			actionEffect.Message += " (Plan Aborted)"
		}

		if actionEffect.Success && actionEffect.Action.Type == model.ActionCommunicate {
			s.dispatchCommunication(ctx, agent, actionEffect.Action.TargetID)
		}

		s.applyEffect(ctx, actionEffect)

		agent.ActionHistory = append(agent.ActionHistory, model.HistoryEntry{
			Tick: s.TickCount, Action: actionEffect.Action, Success: actionEffect.Success, EnergyCost: actionEffect.EnergyCost,
		})
		reflection.Reflect(agent)

		if s.TickCount%5 == 0 {
			s.logPeriodicStatus(ctx, agentLog, agent)
		}

		s.Metrics.ActionsByType.WithLabelValues(string(actionEffect.Action.Type), successLabel(actionEffect.Success)).Inc()
		_ = s.Recorder.Record(ctx, eventlog.Record{
			Tick: s.TickCount, Kind: eventlog.EventState, AgentID: agent.ID,
			Payload: map[string]any{"loc": agent.LocationID, "energy": agent.Energy, "alive": agent.IsAlive},
		})
	}

	s.Metrics.AgentsAlive.Set(float64(alive))
	if f, ok := s.Bus.(flushable); ok {
		f.Flush()
	}
	s.TickCount++
	return nil
}

// flushable is satisfied by comms.LocalBus: messages enqueued during
// a tick are staged, not delivered, until the whole agent loop above
// has run, so no agent can ever see a message sent by another agent
// later in the same tick's iteration order.
type flushable interface {
	Flush()
}

func successLabel(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}

// logPeriodicStatus reports negative reflection scores and the trust
// map every 5 ticks, matching the reference's sampling cadence for
// these two noisy, slowly-changing views of agent state.
func (s *Simulation) logPeriodicStatus(ctx context.Context, agentLog zerolog.Logger, agent *model.Agent) {
	bad := make(map[string]float64)
	for loc, score := range agent.ReflectionScore {
		if score < 0 {
			bad[loc] = score
		}
	}
	if len(bad) > 0 {
		agentLog.Info().Interface("avoid_list", bad).Msg("reflection")
		_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventReflection, AgentID: agent.ID, Payload: map[string]any{"avoid_list": bad}})
	}

	if len(agent.TrustScores) > 0 {
		agentLog.Info().Interface("trust", agent.TrustScores).Msg("social status")
		_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventSocialStatus, AgentID: agent.ID, Payload: map[string]any{"trust": agent.TrustScores}})
	}
}

func (s *Simulation) dispatchCommunication(ctx context.Context, agent *model.Agent, targetID string) {
	all := s.World.Agents()
	switch {
	case targetID == "ALARM":
		s.broadcastAll(ctx, agent, &model.Message{SenderID: agent.ID, Tick: s.TickCount, Type: model.MessageAlarm, Location: agent.LocationID})
		_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventAlarmChirp, AgentID: agent.ID, Payload: map[string]any{"location": agent.LocationID}})

	case targetID == "HELP_CALL":
		s.broadcastAll(ctx, agent, &model.Message{SenderID: agent.ID, Tick: s.TickCount, Type: model.MessageHelpCall, Location: agent.LocationID})
		_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventHelpCallSent, AgentID: agent.ID, Payload: map[string]any{"location": agent.LocationID}})

	case strings.HasPrefix(targetID, "PUZZLE_HELP:"):
		puzzleID := strings.TrimPrefix(targetID, "PUZZLE_HELP:")
		if obj, ok := s.World.Entity(puzzleID); ok {
			msg := &model.Message{
				SenderID: agent.ID, Tick: s.TickCount, Type: model.MessagePuzzleHelp,
				Location: agent.LocationID, PuzzleID: puzzleID,
				Obstacle: &model.ObstacleInfo{ID: obj.ID, ToolRequired: obj.ToolRequired, RequiredAgents: obj.RequiredAgents},
			}
			s.broadcastAll(ctx, agent, msg)
			_ = s.Recorder.Record(ctx, eventlog.Record{
				Tick: s.TickCount, Kind: eventlog.EventPuzzleHelpSent, AgentID: agent.ID,
				Payload: map[string]any{"location": agent.LocationID, "puzzle": puzzleID},
			})
		}

	case strings.HasPrefix(targetID, "STORY:"):
		listenerID := strings.TrimPrefix(targetID, "STORY:")
		if receiver, ok := s.World.Agent(listenerID); ok {
			if story := social.SelectStoryToTell(agent); story != nil {
				comms.Broadcast(s.Bus, agent, []*model.Agent{receiver}, &model.Message{
					SenderID: agent.ID, Tick: s.TickCount, Type: model.MessageStory, Story: story,
				})
				_ = s.Recorder.Record(ctx, eventlog.Record{
					Tick: s.TickCount, Kind: eventlog.EventStoryShared, AgentID: agent.ID,
					Payload: map[string]any{"receiver": listenerID, "topic": string(story.Topic)},
				})
			}
		}

	case targetID != "":
		if target, ok := s.World.Agent(targetID); ok {
			if loc := social.IdentifyHighestValueInfo(agent); loc != "" {
				node := &model.CognitiveNode{Objects: []string{string(model.ObjectFood)}}
				comms.Broadcast(s.Bus, agent, []*model.Agent{target}, &model.Message{
					SenderID: agent.ID, Tick: s.TickCount, Type: model.MessageMapUpdate,
					MapUpdate: map[string]*model.CognitiveNode{loc: node},
				})
				_ = s.Recorder.Record(ctx, eventlog.Record{
					Tick: s.TickCount, Kind: eventlog.EventAltruisticAction, AgentID: agent.ID,
					Payload: map[string]any{"receiver": targetID, "location": loc},
				})
			} else {
				comms.Broadcast(s.Bus, agent, []*model.Agent{target}, &model.Message{
					SenderID: agent.ID, Tick: s.TickCount, Type: model.MessageMapUpdate, MapUpdate: agent.CognitiveMap,
				})
			}
		}

	default:
		s.broadcastAll(ctx, agent, &model.Message{
			SenderID: agent.ID, Tick: s.TickCount, Type: model.MessageMapUpdate, MapUpdate: agent.CognitiveMap,
		})
		_ = s.Recorder.Record(ctx, eventlog.Record{
			Tick: s.TickCount, Kind: eventlog.EventCommunication, AgentID: agent.ID,
			Payload: map[string]any{"receivers": len(all) - 1, "payload_size": len(agent.CognitiveMap)},
		})
	}
}

func (s *Simulation) broadcastAll(_ context.Context, sender *model.Agent, msg *model.Message) {
	comms.Broadcast(s.Bus, sender, s.World.Agents(), msg)
}

// applyEffect is the only place World or Agent state is mutated.
func (s *Simulation) applyEffect(ctx context.Context, effect model.Effect) {
	agent, ok := s.World.Agent(effect.AgentID)
	if !ok {
		return
	}

	agent.Energy -= effect.EnergyCost
	agent.Energy += effect.EnergyGain

	if agent.Energy <= 0 && agent.IsAlive {
		agent.IsAlive = false
		logging.LogDeath(logging.ForAgent(logging.ForTick(s.TickCount), agent.ID))
		_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventDeath, AgentID: agent.ID, Payload: map[string]any{"reason": "starvation"}})
		s.Metrics.DeathsTotal.Inc()
	}

	if !effect.Success {
		return
	}

	switch effect.Action.Type {
	case model.ActionExtract:
		agent.Skills["EXTRACT"] = agent.SkillOrDefault("EXTRACT") + 0.1
	case model.ActionUse:
		agent.Skills["USE"] = agent.SkillOrDefault("USE") + 0.1
	case model.ActionMove:
		agent.Skills["EXPLORE"] = agent.SkillOrDefault("EXPLORE") + 0.02
	}

	if effect.NewLocationID != "" {
		s.World.MoveAgent(effect.AgentID, effect.NewLocationID)
	}

	switch effect.Action.Type {
	case model.ActionPickup:
		objID := effect.Action.TargetID
		if obj, ok := s.World.Entity(objID); ok {
			s.World.UnlistObject(objID)
			agent.Inventory = append(agent.Inventory, obj)
			_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventInventoryAdd, AgentID: agent.ID, Payload: map[string]any{"object_id": objID}})
		}
	case model.ActionDrop:
		objID := effect.Action.TargetID
		for i, o := range agent.Inventory {
			if o.ID == objID {
				agent.Inventory = append(agent.Inventory[:i], agent.Inventory[i+1:]...)
				s.World.AddObjectToLocation(objID, agent.LocationID)
				_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventInventoryRemove, AgentID: agent.ID, Payload: map[string]any{"object_id": objID}})
				break
			}
		}
	}

	if effect.RemovedObjectID != "" {
		switch effect.Action.Type {
		case model.ActionConsume:
			s.World.RemoveObject(effect.RemovedObjectID)
		case model.ActionExtract:
			s.World.RemoveObject(effect.RemovedObjectID)
			var participants []string
			for _, a := range s.World.AgentsAt(agent.LocationID) {
				participants = append(participants, a.ID)
			}
			_ = s.Recorder.Record(ctx, eventlog.Record{
				Tick: s.TickCount, Kind: eventlog.EventCoopExtraction, AgentID: agent.ID,
				Payload: map[string]any{"object_id": effect.RemovedObjectID, "participants": participants},
			})
		case model.ActionUse:
			s.World.RemoveObject(effect.RemovedObjectID)
			_ = s.Recorder.Record(ctx, eventlog.Record{Tick: s.TickCount, Kind: eventlog.EventObjectUsed, AgentID: agent.ID, Payload: map[string]any{"object_id": effect.RemovedObjectID}})
		}
	}
}
