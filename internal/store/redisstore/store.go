package redisstore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/suPer8Hu/chat-sessions/internal/events"
	"github.com/suPer8Hu/chat-sessions/internal/observability"
)

// Store publishes and subscribes to chat events over a Redis pub/sub channel.
type Store struct {
	rdb     *redis.Client
	channel string
}

func New(addr, password string, db int, channel string) *Store {
	return NewFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), channel)
}

func NewFromClient(rdb *redis.Client, channel string) *Store {
	return &Store{rdb: rdb, channel: channel}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Publish(ctx context.Context, e events.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel, b).Err()
}

// Subscribe feeds every event on the channel to handle until ctx is cancelled.
// Pub/sub has no redelivery, so handler errors are only logged.
func (s *Store) Subscribe(ctx context.Context, handle events.Handler) error {
	sub := s.rdb.Subscribe(ctx, s.channel)
	defer sub.Close()

	// wait for the subscription to be confirmed before reading
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	log := observability.WithFields("channel", s.channel)
	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			e, err := events.Decode([]byte(m.Payload))
			if err != nil {
				log.Warn("bad message", "error", err)
				continue
			}
			if err := handle(ctx, e); err != nil {
				log.Error("event handling failed", "event_id", e.ID, "error", err)
			}
		}
	}
}
