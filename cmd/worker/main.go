package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suPer8Hu/chat-sessions/internal/config"
	"github.com/suPer8Hu/chat-sessions/internal/events"
	"github.com/suPer8Hu/chat-sessions/internal/observability"
	"github.com/suPer8Hu/chat-sessions/internal/store/rabbitmq"
	"github.com/suPer8Hu/chat-sessions/internal/store/redisstore"
	"github.com/suPer8Hu/chat-sessions/internal/telemetry"
)

// The worker consumes chat events and writes one audit line per event.
func main() {
	if err := run(); err != nil {
		observability.Logger().Error("worker exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, logCloser, err := observability.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelemetryEnabled {
		cleanup, err := telemetry.Init(ctx, cfg.TelemetryDir)
		if err != nil {
			return err
		}
		defer cleanup()
	}
	metrics, err := telemetry.NewChatMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	handle := auditHandler(metrics)

	switch cfg.EventsBackend {
	case config.EventsRabbitMQ:
		c, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitQueue, cfg.WorkerConcurrency)
		if err != nil {
			return fmt.Errorf("rabbit consumer: %w", err)
		}
		defer c.Close()

		log.Info("worker started", "backend", cfg.EventsBackend, "queue", cfg.RabbitQueue, "concurrency", cfg.WorkerConcurrency)
		err = c.Run(ctx, handle)
		log.Info("worker shutting down")
		return err

	case config.EventsRedis:
		s := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel)
		defer s.Close()

		log.Info("worker started", "backend", cfg.EventsBackend, "channel", cfg.RedisChannel)
		err := s.Subscribe(ctx, handle)
		log.Info("worker shutting down")
		return err

	default:
		return fmt.Errorf("worker needs EVENTS_BACKEND=rabbitmq or redis, got %q", cfg.EventsBackend)
	}
}

func auditHandler(metrics *telemetry.ChatMetrics) events.Handler {
	return func(ctx context.Context, e events.Event) error {
		start := time.Now()
		attrs := []any{
			"event_id", e.ID,
			"type", e.Type,
			"session_id", e.SessionID,
			"occurred_at", e.OccurredAt,
		}
		switch e.Type {
		case events.SessionCreated:
			attrs = append(attrs, "session_user", e.User)
		case events.MessageAdded:
			attrs = append(attrs, "role", e.Role)
		default:
			return fmt.Errorf("unknown event type %q", e.Type)
		}

		metrics.EventConsumed(ctx, string(e.Type))
		observability.WithFields(attrs...).Info("audit", "lag", start.Sub(e.OccurredAt).String())
		return nil
	}
}
