package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lexroute/lexroute/config"
	"github.com/lexroute/lexroute/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_Generates(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if captured == "" {
		t.Fatal("expected a generated request ID")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("expected UUID request ID, got %q", captured)
	}
	if got := w.Header().Get("X-Request-ID"); got != captured {
		t.Errorf("expected response header %q, got %q", captured, got)
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "existing-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if captured != "existing-123" {
		t.Errorf("expected existing-123, got %q", captured)
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &config.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST"},
	}
	handler := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("unexpected allow-origin header %q", got)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	cfg := &config.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://app.example.com"},
	}
	handler := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
}

func TestCORS_Disabled(t *testing.T) {
	handler := CORS(&config.CORSConfig{})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// With CORS disabled, preflight falls through to the handler.
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTimeout(t *testing.T) {
	handler := Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("expected 504, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             2,
	}
	handler := RateLimit(cfg)(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("expected first two requests to pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request throttled, got %v", statuses)
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             1,
	}
	handler := RateLimit(cfg)(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/test", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for first client, got %d", w.Code)
	}

	// A different client gets its own bucket.
	second := httptest.NewRequest(http.MethodGet, "/test", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for second client, got %d", w.Code)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/v1/queries", "/api/v1/queries"},
		{"/api/v1/interactions/550e8400-e29b-41d4-a716-446655440000/feedback", "/api/v1/interactions/:id/feedback"},
		{"/api/v1/sessions/12345/summary", "/api/v1/sessions/:id/summary"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type fakeRecorder struct {
	requests int
	active   int
}

func (f *fakeRecorder) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	f.requests++
}
func (f *fakeRecorder) IncActiveConnections() { f.active++ }
func (f *fakeRecorder) DecActiveConnections() { f.active-- }

func TestMetrics(t *testing.T) {
	recorder := &fakeRecorder{}
	handler := Metrics(recorder)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/queries", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if recorder.requests != 1 {
		t.Errorf("expected 1 recorded request, got %d", recorder.requests)
	}
	if recorder.active != 0 {
		t.Errorf("expected active connections back to 0, got %d", recorder.active)
	}
}

func TestMetrics_SkipsMetricsEndpoint(t *testing.T) {
	recorder := &fakeRecorder{}
	handler := Metrics(recorder)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if recorder.requests != 0 {
		t.Errorf("expected no recorded requests, got %d", recorder.requests)
	}
}
