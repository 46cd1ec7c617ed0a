package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexroute/lexroute/pkg/eventbus"
)

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestWebSocketHandler_StreamsEvents(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	h := NewWebSocketHandler(testLogger(), WebSocketConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = h.RunEventBridge(ctx, bus) }()

	mux := http.NewServeMux()
	mux.Handle("/ws/events", h)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dialWS(t, server)
	defer conn.Close()

	// Give the read pump time to register the client.
	require.Eventually(t, func() bool { return h.Manager().Count() == 1 },
		time.Second, 10*time.Millisecond)

	env := &eventbus.Envelope{
		EventID:       "evt-1",
		EventType:     eventbus.EventQueryHandled,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "v1",
		SessionID:     "sess-1",
	}
	payload, err := json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, eventbus.Subject(eventbus.EventQueryHandled), payload))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var received eventbus.Envelope
	require.NoError(t, json.Unmarshal(data, &received))
	assert.Equal(t, "evt-1", received.EventID)
	assert.Equal(t, eventbus.EventQueryHandled, received.EventType)
}

func TestWebSocketHandler_SessionFiltering(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	h := NewWebSocketHandler(testLogger(), WebSocketConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = h.RunEventBridge(ctx, bus) }()

	mux := http.NewServeMux()
	mux.Handle("/ws/events", h)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dialWS(t, server)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Manager().Count() == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"subscribe","session_id":"sess-wanted"}`)))

	// Let the subscription land before publishing.
	time.Sleep(50 * time.Millisecond)

	publish := func(sessionID, eventID string) {
		env := &eventbus.Envelope{
			EventID:       eventID,
			EventType:     eventbus.EventQueryHandled,
			Timestamp:     time.Now().UTC(),
			SchemaVersion: "v1",
			SessionID:     sessionID,
		}
		payload, err := json.Marshal(env)
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, eventbus.Subject(eventbus.EventQueryHandled), payload))
	}

	publish("sess-other", "evt-filtered")
	publish("sess-wanted", "evt-delivered")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var received eventbus.Envelope
	require.NoError(t, json.Unmarshal(data, &received))
	assert.Equal(t, "evt-delivered", received.EventID)
}

func TestWebSocketHandler_RejectsPlainHTTP(t *testing.T) {
	h := NewWebSocketHandler(testLogger(), WebSocketConfig{})

	req := httptest.NewRequest(http.MethodGet, "/ws/events", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebSocketHandler_ConnectionLimit(t *testing.T) {
	h := NewWebSocketHandler(testLogger(), WebSocketConfig{MaxConnections: 1})

	mux := http.NewServeMux()
	mux.Handle("/ws/events", h)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dialWS(t, server)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Manager().Count() == 1 },
		time.Second, 10*time.Millisecond)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestConnectionManager_BroadcastDropsSlowClients(t *testing.T) {
	m := NewConnectionManager(10)

	client := newWSClient(nil)
	require.NoError(t, m.Register(client))

	// Fill the send buffer so the next broadcast cannot be delivered.
	for i := 0; i < defaultSendBuffer; i++ {
		client.send <- []byte("{}")
	}

	env := &eventbus.Envelope{EventID: "evt-1", EventType: eventbus.EventQueryHandled}
	require.NoError(t, m.Broadcast(env))

	assert.Equal(t, 0, m.Count())
}
