// Package pubsub fans committed ledger events out to other processes over
// Redis Pub/Sub.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/shared/goroutine"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

const publishTimeout = 3 * time.Second

// LedgerEventMessage is the wire form of a committed domain event.
type LedgerEventMessage struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  int64           `json:"occurred_at"`
	Version     int             `json:"version"`
	Payload     json.RawMessage `json:"payload"`
	InstanceID  string          `json:"instance_id,omitempty"` // source instance, used to skip self-delivery
}

// RedisLedgerEventBus publishes ledger events to a Redis channel and lets
// other instances consume them. It implements events.EventHandler so it can
// be attached to the in-process dispatcher.
type RedisLedgerEventBus struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

// NewRedisLedgerEventBus creates a new Redis-based ledger event bus.
func NewRedisLedgerEventBus(client *redis.Client, channel string, logger logger.Interface) *RedisLedgerEventBus {
	return &RedisLedgerEventBus{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// CanHandle accepts every event type.
func (b *RedisLedgerEventBus) CanHandle(string) bool {
	return true
}

// Handle forwards a dispatched event to Redis.
func (b *RedisLedgerEventBus) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return b.Publish(ctx, event)
}

// Publish encodes event and publishes it on the configured channel.
func (b *RedisLedgerEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event.GetEventType(), err)
	}

	data, err := json.Marshal(LedgerEventMessage{
		EventID:     event.GetEventID(),
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt().Unix(),
		Version:     event.GetVersion(),
		Payload:     payload,
		InstanceID:  b.instanceID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event message: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ledger event",
			"event_type", event.GetEventType(),
			"event_id", event.GetEventID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish ledger event: %w", err)
	}

	b.logger.Debugw("ledger event published to Redis",
		"event_type", event.GetEventType(),
		"event_id", event.GetEventID(),
	)
	return nil
}

// Subscribe delivers events published by other instances until ctx is done.
// Dropped connections are retried with exponential backoff.
func (b *RedisLedgerEventBus) Subscribe(ctx context.Context, handler func(msg LedgerEventMessage)) error {
	return b.subscribeWithReconnect(ctx, func(payload string) {
		var msg LedgerEventMessage
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			b.logger.Warnw("failed to unmarshal ledger event",
				"payload", payload,
				"error", err,
			)
			return
		}
		if msg.InstanceID == b.instanceID {
			return
		}
		handler(msg)
	})
}

func (b *RedisLedgerEventBus) subscribeWithReconnect(ctx context.Context, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("ledger event subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisLedgerEventBus) subscribe(ctx context.Context, handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to ledger event channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("ledger event subscriber stopped",
				"channel", b.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("ledger event channel closed", "channel", b.channel)
				return nil
			}
			goroutine.Run(b.logger, "ledger-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
