package comms

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"cogsim/internal/model"
)

// RedisBus is a cross-process Bus adapter: each recipient gets its own
// channel, "cogsim:agent:<id>", and a background subscriber drains
// incoming payloads into a local buffer ProcessMessages can drain the
// same way it drains LocalBus's in-memory inbox. It forfeits this
// package's single-process determinism guarantees the moment more
// than one simulation process shares the same Redis instance — it
// exists for fan-out visualization/observer processes, not for
// driving the deterministic core itself.
type RedisBus struct {
	client *redis.Client
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	inboxes map[string][]*model.Message
	subs    map[string]*redis.PubSub
}

// NewRedisBus wraps client. Call Close when done to stop subscriptions.
func NewRedisBus(client *redis.Client) *RedisBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisBus{
		client:  client,
		ctx:     ctx,
		cancel:  cancel,
		inboxes: make(map[string][]*model.Message),
		subs:    make(map[string]*redis.PubSub),
	}
}

func channelFor(recipientID string) string {
	return fmt.Sprintf("cogsim:agent:%s", recipientID)
}

// Subscribe starts listening for recipientID's channel; Enqueue
// publishes there, and the background reader appends decoded payloads
// to this bus's local buffer for recipientID.
func (b *RedisBus) Subscribe(recipientID string) error {
	b.mu.Lock()
	if _, ok := b.subs[recipientID]; ok {
		b.mu.Unlock()
		return nil
	}
	sub := b.client.Subscribe(b.ctx, channelFor(recipientID))
	b.subs[recipientID] = sub
	b.mu.Unlock()

	if _, err := sub.Receive(b.ctx); err != nil {
		return fmt.Errorf("comms: subscribe %s: %w", recipientID, err)
	}

	go b.drain(recipientID, sub)
	return nil
}

func (b *RedisBus) drain(recipientID string, sub *redis.PubSub) {
	ch := sub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case raw, ok := <-ch:
			if !ok {
				return
			}
			var msg model.Message
			if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
				continue
			}
			b.mu.Lock()
			b.inboxes[recipientID] = append(b.inboxes[recipientID], &msg)
			b.mu.Unlock()
		}
	}
}

// Enqueue publishes msg to recipientID's channel.
func (b *RedisBus) Enqueue(recipientID string, msg *model.Message) {
	if recipientID == msg.SenderID {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	b.client.Publish(b.ctx, channelFor(recipientID), data)
}

// DrainLocal pops and returns every message buffered so far for
// recipientID, in arrival order.
func (b *RedisBus) DrainLocal(recipientID string) []*model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.inboxes[recipientID]
	b.inboxes[recipientID] = nil
	return msgs
}

// Close stops every subscription.
func (b *RedisBus) Close() error {
	b.cancel()
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		_ = sub.Close()
	}
	return nil
}
