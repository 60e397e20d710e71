package chat

import (
	"context"
	"strings"
	"time"

	"github.com/suPer8Hu/chat-sessions/internal/events"
	"github.com/suPer8Hu/chat-sessions/internal/observability"
	"github.com/suPer8Hu/chat-sessions/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/suPer8Hu/chat-sessions/internal/chat")

type Service struct {
	store     Store
	publisher events.Publisher
	metrics   *telemetry.ChatMetrics
	now       func() time.Time
}

// NewService wires the store with optional event publishing and metrics;
// nil publisher and nil metrics are allowed.
func NewService(store Store, publisher events.Publisher, metrics *telemetry.ChatMetrics) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{store: store, publisher: publisher, metrics: metrics, now: time.Now}
}

// NormalizeUsername trims surrounding whitespace and lower-cases.
func NormalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

func (s *Service) CreateSession(ctx context.Context, user string) (sess *Session, err error) {
	ctx, span := tracer.Start(ctx, "chat.CreateSession")
	defer func() { endSpan(span, err) }()

	username := NormalizeUsername(user)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	sess, err = s.store.CreateSession(ctx, username, s.now().UTC())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("chat.session_id", sess.ID))
	s.metrics.SessionCreated(ctx)

	s.publish(ctx, events.SessionCreated, sess.ID, func(e *events.Event) { e.User = sess.User })
	return sess, nil
}

func (s *Service) AddMessage(ctx context.Context, sessionID int64, role, content string) (err error) {
	ctx, span := tracer.Start(ctx, "chat.AddMessage",
		trace.WithAttributes(attribute.Int64("chat.session_id", sessionID)))
	defer func() { endSpan(span, err) }()

	if err := s.requireSession(ctx, sessionID); err != nil {
		return err
	}

	r, ok := ParseRole(role)
	if !ok {
		return ErrInvalidRole
	}
	if content == "" {
		return ErrEmptyContent
	}

	m := &Message{
		SessionID: sessionID,
		Role:      string(r),
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, m); err != nil {
		return err
	}
	s.metrics.MessageAdded(ctx, string(r))

	s.publish(ctx, events.MessageAdded, sessionID, func(e *events.Event) { e.Role = string(r) })
	return nil
}

// GetMessages returns the session's messages in insertion order. A nil role
// means no filter; a non-nil role must name a known role, empty included.
func (s *Service) GetMessages(ctx context.Context, sessionID int64, role *string) (msgs []Message, err error) {
	ctx, span := tracer.Start(ctx, "chat.GetMessages",
		trace.WithAttributes(attribute.Int64("chat.session_id", sessionID)))
	defer func() { endSpan(span, err) }()

	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	var filter Role
	if role != nil {
		r, ok := ParseRole(*role)
		if !ok {
			return nil, ErrInvalidRoleFilter
		}
		filter = r
	}

	msgs, err = s.store.ListMessages(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

func (s *Service) requireSession(ctx context.Context, sessionID int64) error {
	ok, err := s.store.SessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// publish is best effort: the mutation already happened.
func (s *Service) publish(ctx context.Context, t events.Type, sessionID int64, fill func(*events.Event)) {
	e, err := events.New(t, sessionID)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("build event failed", "type", t, "error", err)
		return
	}
	if fill != nil {
		fill(&e)
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		observability.LoggerFromContext(ctx).Warn("publish event failed",
			"type", t, "event_id", e.ID, "session_id", sessionID, "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
