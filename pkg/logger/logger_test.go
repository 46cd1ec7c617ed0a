package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"unknown", InfoLevel}, // default
		{"", InfoLevel},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "debug"},
		{InfoLevel, "info"},
		{WarnLevel, "warn"},
		{ErrorLevel, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := tt.level.String()
			if result != tt.expected {
				t.Errorf("Level.String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	log := New(nil)
	if log == nil {
		t.Fatal("expected non-nil logger with nil config")
	}

	log = New(&Config{Level: DebugLevel, Format: "json", Output: "stdout"})
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestSlogLogger_With(t *testing.T) {
	log := New(&Config{Level: InfoLevel, Format: "text", Output: "stdout"})

	newLog := log.With("component", "classifier")
	if newLog == nil {
		t.Fatal("expected non-nil logger from With")
	}
}

func TestSlogLogger_WithContext(t *testing.T) {
	log := New(&Config{Level: InfoLevel, Format: "text", Output: "stdout"})
	ctx := log.WithContext(context.Background())

	if FromContext(ctx) == nil {
		t.Fatal("expected non-nil logger from context")
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected global logger when no logger in context")
	}
}

func TestGlobal(t *testing.T) {
	if Global() == nil {
		t.Fatal("expected non-nil global logger")
	}

	custom := New(&Config{Level: WarnLevel, Format: "text", Output: "stderr"})
	prev := Global()
	SetGlobal(custom)
	defer SetGlobal(prev)

	if Global() != custom {
		t.Error("expected SetGlobal to replace the global logger")
	}
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexroute.log")

	log := New(&Config{Level: InfoLevel, Format: "json", Output: path})
	log.Info("test entry", "key", "value")
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}
