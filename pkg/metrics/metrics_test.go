package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true

	m := NewManager(cfg)
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if !m.Enabled() {
		t.Error("Expected metrics to be enabled")
	}
}

func TestNewManager_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	m := NewManager(cfg)
	if m.Enabled() {
		t.Error("Expected metrics to be disabled")
	}

	// All recorders must be safe no-ops when disabled.
	m.RecordClassification("family_law", 0.8)
	m.RecordRetrain("accepted")
	m.SetModelSnapshot(1, 0.9)
	m.RecordQuery("family_law", false, time.Millisecond)
	m.RecordActionSelection(true)
	m.RecordFeedback("up", 1.25)
	m.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
	m.IncActiveConnections()
	m.DecActiveConnections()
}

func TestMetricsHandler(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.RecordClassification("family_law", 0.82)
	m.RecordQuery("family_law", false, 5*time.Millisecond)
	m.RecordActionSelection(false)
	m.RecordFeedback("up", 1.25)
	m.SetModelSnapshot(3, 0.91)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, metric := range []string{
		"classifications_total",
		"queries_total",
		"action_selections_total",
		"feedback_total",
		"model_snapshot_version",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %s in metrics output", metric)
		}
	}
}

func TestMetricsHandler_Disabled(t *testing.T) {
	m := NoOpManager()

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
