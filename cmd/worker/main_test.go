package main

import (
	"context"
	"testing"

	"github.com/suPer8Hu/chat-sessions/internal/events"
)

func TestAuditHandler(t *testing.T) {
	handle := auditHandler(nil)
	ctx := context.Background()

	created, _ := events.New(events.SessionCreated, 1)
	created.User = "alice"
	if err := handle(ctx, created); err != nil {
		t.Fatalf("session.created: %v", err)
	}

	added, _ := events.New(events.MessageAdded, 1)
	added.Role = "user"
	if err := handle(ctx, added); err != nil {
		t.Fatalf("message.added: %v", err)
	}

	unknown, _ := events.New(events.Type("session.deleted"), 1)
	if err := handle(ctx, unknown); err == nil {
		t.Fatalf("expected error for unknown event type")
	}
}
