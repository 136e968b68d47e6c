package eventlog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cogsim/internal/model"
)

// PostgresRecorder persists the event stream to an append-only
// Postgres table, mirroring the reference PostgresEventStore's
// insert-only access pattern.
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

// NewPostgresRecorder wraps an existing pool. Callers are responsible
// for having created the events table:
//
//	CREATE TABLE sim_events (
//	    id UUID PRIMARY KEY,
//	    tick INT NOT NULL,
//	    kind TEXT NOT NULL,
//	    agent_id TEXT NOT NULL,
//	    ts TIMESTAMPTZ NOT NULL,
//	    payload JSONB NOT NULL
//	);
func NewPostgresRecorder(pool *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{pool: pool}
}

// Record inserts rec as a single row.
func (r *PostgresRecorder) Record(ctx context.Context, rec Record) error {
	payload, err := MarshalPayload(rec)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO sim_events (id, tick, kind, agent_id, ts, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, model.NewID(), rec.Tick, rec.Kind, rec.AgentID, rec.Timestamp, payload)
	return err
}
