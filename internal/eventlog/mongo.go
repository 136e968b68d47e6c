package eventlog

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// ArchiveCollectionName is the default Mongo collection a completed
// run's full event stream is bulk-archived into.
const ArchiveCollectionName = "sim_event_archive"

// MongoArchiveRecorder is a cold-storage sink: it batches records in
// memory and flushes them as a single bulk insert, for archiving a
// finished simulation run rather than serving live queries.
type MongoArchiveRecorder struct {
	collection *mongo.Collection
	batch      []any
	batchSize  int
}

// NewMongoArchiveRecorder wraps db's archive collection. batchSize <= 0
// defaults to 500.
func NewMongoArchiveRecorder(db *mongo.Database, batchSize int) *MongoArchiveRecorder {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &MongoArchiveRecorder{
		collection: db.Collection(ArchiveCollectionName),
		batchSize:  batchSize,
	}
}

type archiveDoc struct {
	Tick    int            `bson:"tick"`
	Kind    string         `bson:"kind"`
	AgentID string         `bson:"agent_id"`
	Payload map[string]any `bson:"payload"`
}

// Record buffers rec and flushes once the batch reaches batchSize.
func (m *MongoArchiveRecorder) Record(ctx context.Context, rec Record) error {
	m.batch = append(m.batch, archiveDoc{
		Tick: rec.Tick, Kind: string(rec.Kind), AgentID: rec.AgentID, Payload: rec.Payload,
	})
	if len(m.batch) >= m.batchSize {
		return m.Flush(ctx)
	}
	return nil
}

// Flush inserts any buffered records and clears the batch, even on
// error (a failed bulk insert is not worth retrying document-by-
// document for an archive sink).
func (m *MongoArchiveRecorder) Flush(ctx context.Context) error {
	if len(m.batch) == 0 {
		return nil
	}
	docs := m.batch
	m.batch = nil
	_, err := m.collection.InsertMany(ctx, docs)
	return err
}
