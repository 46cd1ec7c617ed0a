package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexroute/lexroute/pkg/engine"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestQueryHandler_HandleQuery(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewQueryHandler(eng, testLogger())

	w := postJSON(t, h.HandleQuery, "/api/v1/queries",
		`{"session_id":"sess-1","query":"I want to file for divorce"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp engine.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "family_law", string(resp.Domain))
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.NotEmpty(t, resp.InteractionID)
	assert.NotEmpty(t, resp.Routes)
	assert.Greater(t, resp.Confidence, 0.3)
}

func TestQueryHandler_HandleQuery_MissingQuery(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewQueryHandler(eng, testLogger())

	w := postJSON(t, h.HandleQuery, "/api/v1/queries", `{"session_id":"sess-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHandler_HandleQuery_InvalidBody(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewQueryHandler(eng, testLogger())

	w := postJSON(t, h.HandleQuery, "/api/v1/queries", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHandler_HandleQuery_UnknownDomainFallsBack(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewQueryHandler(eng, testLogger())

	w := postJSON(t, h.HandleQuery, "/api/v1/queries",
		`{"session_id":"sess-1","query":"zzzz qqqq xyzzy"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp engine.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, "unknown", string(resp.Domain))
}

func TestQueryHandler_Classify(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewQueryHandler(eng, testLogger())

	w := postJSON(t, h.Classify, "/api/v1/queries/classify",
		`{"query":"I want to file for divorce"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "family_law", resp["domain"])
	assert.NotEmpty(t, resp["scores"])
}

func TestQueryHandler_Classify_EmptyQuery(t *testing.T) {
	eng, _ := newTestEngine(t)
	h := NewQueryHandler(eng, testLogger())

	w := postJSON(t, h.Classify, "/api/v1/queries/classify", `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
