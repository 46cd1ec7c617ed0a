package tracing

import (
	"context"
	"testing"
	"time"

	"github.com/lexroute/lexroute/config"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{Enabled: false}, "lexroute", "test")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestInit_EmptyEndpoint(t *testing.T) {
	cfg := config.TracingConfig{
		Enabled: true,
		Timeout: 5 * time.Second,
	}
	if _, err := Init(context.Background(), cfg, "lexroute", "test"); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

func TestInit_InvalidTimeout(t *testing.T) {
	cfg := config.TracingConfig{
		Enabled:  true,
		Endpoint: "localhost:4317",
	}
	if _, err := Init(context.Background(), cfg, "lexroute", "test"); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"localhost:4317", "localhost:4317"},
		{"  collector:4317  ", "collector:4317"},
		{"http://collector:4317", "collector:4317"},
		{"grpc://collector:4317/v1/traces", "collector:4317"},
	}
	for _, tt := range tests {
		if got := normalizeEndpoint(tt.in); got != tt.want {
			t.Errorf("normalizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
