package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexroute/lexroute/pkg/routes"
)

func TestRoutesHandler_Search(t *testing.T) {
	h := NewRoutesHandler(routes.NewSelector(nil, nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/search?q=divorce", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Query  string           `json:"query"`
		Routes []map[string]any `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "divorce", body.Query)
	assert.NotEmpty(t, body.Routes)
}

func TestRoutesHandler_Search_MissingQuery(t *testing.T) {
	h := NewRoutesHandler(routes.NewSelector(nil, nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/search", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutesHandler_GetByDomain(t *testing.T) {
	h := NewRoutesHandler(routes.NewSelector(nil, nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/family_law", nil)
	req = withChiURLParam(req, "domain", "family_law")
	w := httptest.NewRecorder()
	h.GetByDomain(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Domain string           `json:"domain"`
		Routes []map[string]any `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "family_law", body.Domain)
	assert.NotEmpty(t, body.Routes)
}

func TestRoutesHandler_GetByDomain_Invalid(t *testing.T) {
	h := NewRoutesHandler(routes.NewSelector(nil, nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/space_law", nil)
	req = withChiURLParam(req, "domain", "space_law")
	w := httptest.NewRecorder()
	h.GetByDomain(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
