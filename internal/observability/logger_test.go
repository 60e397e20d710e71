package observability

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("unexpected request id: %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
	if LoggerFromContext(context.Background()) != Logger() {
		t.Fatalf("expected base logger without request id")
	}
}

func TestInit_WithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	l, closer, err := Init("debug", file)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer closer.Close()

	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug level enabled")
	}
	if Logger() != l {
		t.Fatalf("expected global logger to be replaced")
	}
}
