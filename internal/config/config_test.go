package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"HTTP_ADDR", "SHUTDOWN_TIMEOUT", "STORE_DRIVER", "SQLITE_DSN", "EVENTS_BACKEND",
		"RABBIT_URL", "RABBIT_QUEUE", "REDIS_ADDR", "REDIS_DB", "REDIS_CHANNEL",
		"LOG_LEVEL", "LOG_FILE", "TELEMETRY_ENABLED", "TELEMETRY_DIR", "WORKER_CONCURRENCY",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
	}
	if cfg.EventsBackend != EventsNone {
		t.Fatalf("unexpected events backend: %q", cfg.EventsBackend)
	}
	if cfg.RabbitQueue != "chat_events" || cfg.RedisChannel != "chat_events" {
		t.Fatalf("unexpected queue/channel: %q %q", cfg.RabbitQueue, cfg.RedisChannel)
	}
	if cfg.TelemetryEnabled {
		t.Fatalf("telemetry should be disabled by default")
	}
	if cfg.WorkerConcurrency != 2 {
		t.Fatalf("unexpected worker concurrency: %d", cfg.WorkerConcurrency)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", " SQLite ")
	t.Setenv("EVENTS_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("TELEMETRY_ENABLED", "true")
	t.Setenv("WORKER_CONCURRENCY", "500")

	cfg := Load()

	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.StoreDriver != StoreSQLite {
		t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
	}
	if cfg.EventsBackend != EventsRedis {
		t.Fatalf("unexpected events backend: %q", cfg.EventsBackend)
	}
	if cfg.RedisDB != 4 {
		t.Fatalf("unexpected redis db: %d", cfg.RedisDB)
	}
	if !cfg.TelemetryEnabled {
		t.Fatalf("expected telemetry enabled")
	}
	if cfg.WorkerConcurrency != 50 {
		t.Fatalf("expected concurrency capped at 50, got %d", cfg.WorkerConcurrency)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("WORKER_CONCURRENCY", "-1")

	cfg := Load()

	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("unexpected redis db: %d", cfg.RedisDB)
	}
	if cfg.WorkerConcurrency != 2 {
		t.Fatalf("unexpected worker concurrency: %d", cfg.WorkerConcurrency)
	}
}
