// Package events describes the notifications the chat service emits after a
// successful mutation. Delivery is best effort: a failed publish never undoes
// the mutation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/suPer8Hu/chat-sessions/internal/common"
)

type Type string

const (
	SessionCreated Type = "session.created"
	MessageAdded   Type = "message.added"
)

type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	SessionID  int64     `json:"session_id"`
	User       string    `json:"session_user,omitempty"`
	Role       string    `json:"role,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps an event with a ULID and the current UTC time.
func New(t Type, sessionID int64) (Event, error) {
	id, err := common.NewULID()
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         id,
		Type:       t,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
	}, nil
}

func Decode(b []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(b, &e); err != nil {
		return Event{}, err
	}
	if e.ID == "" || e.Type == "" {
		return Event{}, errors.New("events: missing id or type")
	}
	return e, nil
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Handler processes one consumed event.
type Handler func(ctx context.Context, e Event) error

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
