package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/suPer8Hu/chat-sessions/internal/chat"
	"github.com/suPer8Hu/chat-sessions/internal/config"
	"github.com/suPer8Hu/chat-sessions/internal/db"
	"github.com/suPer8Hu/chat-sessions/internal/events"
	"github.com/suPer8Hu/chat-sessions/internal/httpapi"
	"github.com/suPer8Hu/chat-sessions/internal/observability"
	"github.com/suPer8Hu/chat-sessions/internal/store/rabbitmq"
	"github.com/suPer8Hu/chat-sessions/internal/store/redisstore"
	"github.com/suPer8Hu/chat-sessions/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		observability.Logger().Error("server exited", "error", err)
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

	store, storeCloser, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer storeCloser.Close()

	publisher, pubCloser, err := openPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer pubCloser.Close()

	svc := chat.NewService(store, publisher, metrics)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(svc),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver, "events", cfg.EventsBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg config.Config) (chat.Store, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return chat.NewMemoryStore(), nopCloser{}, nil
	case config.StoreSQLite:
		gdb, err := db.Open(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := chat.Migrate(gdb); err != nil {
			_ = db.Close(gdb)
			return nil, nil, fmt.Errorf("automigrate: %w", err)
		}
		return chat.NewRepo(gdb), closerFunc(func() error { return db.Close(gdb) }), nil
	default:
		return nil, nil, fmt.Errorf("unsupported STORE_DRIVER=%q", cfg.StoreDriver)
	}
}

func openPublisher(ctx context.Context, cfg config.Config) (events.Publisher, io.Closer, error) {
	switch cfg.EventsBackend {
	case config.EventsNone:
		return events.Noop{}, nopCloser{}, nil
	case config.EventsRabbitMQ:
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("rabbit publisher: %w", err)
		}
		return p, p, nil
	case config.EventsRedis:
		s := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unsupported EVENTS_BACKEND=%q", cfg.EventsBackend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
