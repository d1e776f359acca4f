package cache

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventChannel is the Redis channel shared by every finboard instance
const EventChannel = "finboard:events"

// Broadcaster delivers events to the clients connected to this instance
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// envelope is the message published on EventChannel
type envelope struct {
	Origin  string          `json:"origin"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// EventBus broadcasts events locally and relays them to other instances through Redis.
// Without Redis it only broadcasts locally.
type EventBus struct {
	redis    *RedisClient
	local    Broadcaster
	instance string
}

// NewEventBus creates an event bus. redis may be nil.
func NewEventBus(redis *RedisClient, local Broadcaster) *EventBus {
	return &EventBus{
		redis:    redis,
		local:    local,
		instance: uuid.NewString(),
	}
}

// Publish broadcasts an event to local clients and to the other instances
func (b *EventBus) Publish(ctx context.Context, event string, payload interface{}) {
	b.local.Broadcast(event, payload)

	if b.redis == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Failed to encode event payload")
		return
	}
	msg := envelope{Origin: b.instance, Event: event, Payload: raw}
	if err := b.redis.Publish(ctx, EventChannel, msg); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("Failed to publish event to Redis")
	}
}

// Run relays events published by other instances until ctx is done
func (b *EventBus) Run(ctx context.Context) {
	if b.redis == nil {
		return
	}
	sub := b.redis.Subscribe(ctx, EventChannel)
	if sub == nil {
		return
	}
	defer sub.Close()

	log.Info().Str("channel", EventChannel).Msg("📡 Subscribed to event channel")
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.relay([]byte(msg.Payload))
		}
	}
}

// relay forwards a message from another instance to local clients
func (b *EventBus) relay(data []byte) {
	var msg envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed event")
		return
	}
	if msg.Origin == b.instance || msg.Event == "" {
		return
	}
	b.local.Broadcast(msg.Event, msg.Payload)
}
