package logging

import (
	"log/slog"
	"testing"

	"github.com/illinoisestatelaw/casedesk-core/internal/infrastructure/config"
)

func TestNew_ReturnsLogger(t *testing.T) {
	log := New(config.LoggingConfig{Level: "debug", Format: "text", Output: "stdout"}, "test")
	if log == nil || log.Logger == nil {
		t.Fatal("New() should return a usable logger")
	}

	// Must not panic
	log.Debug("debug message", "key", "value")
	log.Info("info message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWith_AddsAttributes(t *testing.T) {
	log := Default()
	child := log.With("component", "test")
	if child == nil || child.Logger == nil {
		t.Fatal("With() should return a usable logger")
	}
	child.Info("message from child")
}
