package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewHonoursLevel(t *testing.T) {
	logger := New("api", "warn")
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be suppressed at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("warn should be enabled at warn level")
	}
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	logger := New("api", "chatty")
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("invalid level should default to info")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be suppressed at the info default")
	}
}
