package chat

import (
	"context"
	"time"
)

// Store owns sessions and their ordered messages. Implementations must be
// safe for concurrent use and return ErrSessionNotFound for unknown ids.
type Store interface {
	// CreateSession assigns the next id and creates the empty message sequence
	// in the same step.
	CreateSession(ctx context.Context, user string, createdAt time.Time) (*Session, error)
	SessionExists(ctx context.Context, id int64) (bool, error)
	// AppendMessage sets m.ID on success.
	AppendMessage(ctx context.Context, m *Message) error
	// ListMessages returns a fresh slice in insertion order. An empty role
	// means no filter.
	ListMessages(ctx context.Context, sessionID int64, role Role) ([]Message, error)
}
