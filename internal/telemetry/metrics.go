package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ChatMetrics holds the counters recorded by the chat service and the worker.
// A nil *ChatMetrics records nothing.
type ChatMetrics struct {
	sessionsCreated metric.Int64Counter
	messagesAdded   metric.Int64Counter
	eventsConsumed  metric.Int64Counter
}

// NewChatMetrics registers the counters on the global meter provider.
func NewChatMetrics() (*ChatMetrics, error) {
	return NewChatMetricsFromMeter(otel.Meter(ServiceName))
}

func NewChatMetricsFromMeter(meter metric.Meter) (*ChatMetrics, error) {
	sessions, err := meter.Int64Counter("chat.sessions.created",
		metric.WithDescription("Number of chat sessions created"))
	if err != nil {
		return nil, err
	}
	messages, err := meter.Int64Counter("chat.messages.added",
		metric.WithDescription("Number of messages appended to sessions"))
	if err != nil {
		return nil, err
	}
	consumed, err := meter.Int64Counter("chat.events.consumed",
		metric.WithDescription("Number of chat events processed by the worker"))
	if err != nil {
		return nil, err
	}
	return &ChatMetrics{
		sessionsCreated: sessions,
		messagesAdded:   messages,
		eventsConsumed:  consumed,
	}, nil
}

func (m *ChatMetrics) SessionCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.sessionsCreated.Add(ctx, 1)
}

func (m *ChatMetrics) MessageAdded(ctx context.Context, role string) {
	if m == nil {
		return
	}
	m.messagesAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("role", role)))
}

func (m *ChatMetrics) EventConsumed(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.eventsConsumed.Add(ctx, 1, metric.WithAttributes(attribute.String("type", eventType)))
}
