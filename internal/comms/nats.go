package comms

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"cogsim/internal/model"
)

// NatsBus is a second cross-process Bus adapter, alongside RedisBus:
// each recipient gets its own subject, "cogsim.agent.<id>", and a
// subscription callback decodes incoming payloads into a local buffer
// ProcessMessages can drain the same way it drains LocalBus's
// in-memory inbox. Like RedisBus it forfeits single-process
// determinism the moment more than one simulation process shares the
// same NATS server — it is an alternate transport choice for a host
// application, never used by the deterministic core or any property
// test.
type NatsBus struct {
	conn *nats.Conn

	mu      sync.Mutex
	inboxes map[string][]*model.Message
	subs    map[string]*nats.Subscription
}

// NewNatsBus wraps conn. Call Close when done to stop subscriptions.
func NewNatsBus(conn *nats.Conn) *NatsBus {
	return &NatsBus{
		conn:    conn,
		inboxes: make(map[string][]*model.Message),
		subs:    make(map[string]*nats.Subscription),
	}
}

func subjectFor(recipientID string) string {
	return fmt.Sprintf("cogsim.agent.%s", recipientID)
}

// Subscribe starts listening for recipientID's subject; Enqueue
// publishes there, and the subscription callback appends decoded
// payloads to this bus's local buffer for recipientID.
func (b *NatsBus) Subscribe(recipientID string) error {
	b.mu.Lock()
	if _, ok := b.subs[recipientID]; ok {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	sub, err := b.conn.Subscribe(subjectFor(recipientID), func(msg *nats.Msg) {
		var decoded model.Message
		if err := json.Unmarshal(msg.Data, &decoded); err != nil {
			return
		}
		b.mu.Lock()
		b.inboxes[recipientID] = append(b.inboxes[recipientID], &decoded)
		b.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("comms: subscribe %s: %w", recipientID, err)
	}

	b.mu.Lock()
	b.subs[recipientID] = sub
	b.mu.Unlock()
	return nil
}

// Enqueue publishes msg to recipientID's subject.
func (b *NatsBus) Enqueue(recipientID string, msg *model.Message) {
	if recipientID == msg.SenderID {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = b.conn.Publish(subjectFor(recipientID), data)
}

// DrainLocal pops and returns every message buffered so far for
// recipientID, in arrival order.
func (b *NatsBus) DrainLocal(recipientID string) []*model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.inboxes[recipientID]
	b.inboxes[recipientID] = nil
	return msgs
}

// Close unsubscribes every recipient this bus ever subscribed.
func (b *NatsBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		_ = sub.Unsubscribe()
	}
	return nil
}
