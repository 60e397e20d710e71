package telemetry

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is not an int64 sum", name)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestChatMetrics_Counts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewChatMetricsFromMeter(mp.Meter("test"))
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	ctx := context.Background()
	m.SessionCreated(ctx)
	m.SessionCreated(ctx)
	m.MessageAdded(ctx, "user")
	m.EventConsumed(ctx, "message.added")

	if got := collectSum(t, reader, "chat.sessions.created"); got != 2 {
		t.Fatalf("expected 2 sessions, got %d", got)
	}
	if got := collectSum(t, reader, "chat.messages.added"); got != 1 {
		t.Fatalf("expected 1 message, got %d", got)
	}
	if got := collectSum(t, reader, "chat.events.consumed"); got != 1 {
		t.Fatalf("expected 1 consumed event, got %d", got)
	}
}

func TestChatMetrics_NilIsNoop(t *testing.T) {
	var m *ChatMetrics
	ctx := context.Background()
	m.SessionCreated(ctx)
	m.MessageAdded(ctx, "assistant")
	m.EventConsumed(ctx, "session.created")
}
