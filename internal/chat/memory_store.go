package chat

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps everything in process memory. One lock guards the
// sessions, the session->messages map and both id counters.
type MemoryStore struct {
	mu            sync.RWMutex
	sessions      map[int64]*Session
	messages      map[int64][]Message
	lastSessionID int64
	lastMessageID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		messages: make(map[int64][]Message),
	}
}

func (s *MemoryStore) CreateSession(_ context.Context, user string, createdAt time.Time) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSessionID++
	sess := &Session{
		ID:        s.lastSessionID,
		User:      user,
		CreatedAt: createdAt,
	}
	s.sessions[sess.ID] = sess
	s.messages[sess.ID] = []Message{}

	out := *sess
	return &out, nil
}

func (s *MemoryStore) SessionExists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[id]
	return ok, nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, m *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.messages[m.SessionID]
	if !ok {
		return ErrSessionNotFound
	}

	s.lastMessageID++
	m.ID = s.lastMessageID
	s.messages[m.SessionID] = append(msgs, *m)
	return nil
}

func (s *MemoryStore) ListMessages(_ context.Context, sessionID int64, role Role) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if role != "" && m.Role != string(role) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
