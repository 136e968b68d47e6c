package eventlog_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"cogsim/internal/eventlog"
)

// PostgresRecorderIntegrationSuite exercises PostgresRecorder against a
// real Postgres instance, mirroring the reference's
// RepositoryIntegrationSuite: testcontainers starts the database,
// lib/pq's database/sql driver runs the one-time schema setup, and the
// recorder itself is driven entirely through pgx/v5, the driver it
// ships with.
type PostgresRecorderIntegrationSuite struct {
	suite.Suite
	db        *sql.DB
	pool      *pgxpool.Pool
	recorder  *eventlog.PostgresRecorder
	container testcontainers.Container
}

func (s *PostgresRecorderIntegrationSuite) SetupSuite() {
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		s.T().Skipf("Skipping integration test: %v", err)
		return
	}
	s.container = container

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")
	dbURL := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	s.db, err = sql.Open("postgres", dbURL)
	s.Require().NoError(err)
	s.Require().NoError(s.db.Ping())

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sim_events (
			id TEXT PRIMARY KEY,
			tick INT NOT NULL,
			kind TEXT NOT NULL,
			agent_id TEXT NOT NULL,
			ts TIMESTAMPTZ NOT NULL,
			payload JSONB NOT NULL
		)
	`)
	s.Require().NoError(err, "failed to create sim_events table")

	s.pool, err = pgxpool.New(ctx, dbURL)
	s.Require().NoError(err)
	s.recorder = eventlog.NewPostgresRecorder(s.pool)
}

func (s *PostgresRecorderIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

func (s *PostgresRecorderIntegrationSuite) SetupTest() {
	if s.pool == nil {
		s.T().Skip("Database not initialized")
	}
	_, _ = s.db.Exec("TRUNCATE TABLE sim_events")
}

func (s *PostgresRecorderIntegrationSuite) TestRecordInsertsOneRowPerCall() {
	ctx := context.Background()

	err := s.recorder.Record(ctx, eventlog.Record{
		Tick: 3, Kind: eventlog.EventDeath, AgentID: "agent-1", Timestamp: time.Now(),
		Payload: map[string]any{"reason": "starvation"},
	})
	s.NoError(err)

	var count int
	s.Require().NoError(s.db.QueryRow("SELECT count(*) FROM sim_events").Scan(&count))
	s.Equal(1, count)

	var tick int
	var kind, agentID string
	s.Require().NoError(s.db.QueryRow("SELECT tick, kind, agent_id FROM sim_events").Scan(&tick, &kind, &agentID))
	s.Equal(3, tick)
	s.Equal(string(eventlog.EventDeath), kind)
	s.Equal("agent-1", agentID)
}

func TestPostgresRecorderIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(PostgresRecorderIntegrationSuite))
}
