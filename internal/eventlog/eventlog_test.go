package eventlog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogsim/internal/eventlog"
)

func TestNoopRecorderDiscardsSilently(t *testing.T) {
	var r eventlog.NoopRecorder
	err := r.Record(context.Background(), eventlog.Record{Kind: eventlog.EventDeath})
	assert.NoError(t, err)
}

func TestMemoryRecorderAccumulatesInOrder(t *testing.T) {
	r := eventlog.NewMemoryRecorder()
	require.NoError(t, r.Record(context.Background(), eventlog.Record{Tick: 1, Kind: eventlog.EventDecision}))
	require.NoError(t, r.Record(context.Background(), eventlog.Record{Tick: 2, Kind: eventlog.EventDeath}))

	got := r.All()
	require.Len(t, got, 2)
	assert.Equal(t, eventlog.EventDecision, got[0].Kind)
	assert.Equal(t, eventlog.EventDeath, got[1].Kind)
}

func TestMemoryRecorderAllReturnsASnapshotCopy(t *testing.T) {
	r := eventlog.NewMemoryRecorder()
	require.NoError(t, r.Record(context.Background(), eventlog.Record{Tick: 1}))
	snap := r.All()
	snap[0].Tick = 999
	assert.Equal(t, 1, r.All()[0].Tick)
}

func TestMarshalPayloadHandlesNilPayload(t *testing.T) {
	raw, err := eventlog.MarshalPayload(eventlog.Record{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestMarshalPayloadEncodesFields(t *testing.T) {
	raw, err := eventlog.MarshalPayload(eventlog.Record{Payload: map[string]any{"reason": "stuck"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reason":"stuck"}`, string(raw))
}
