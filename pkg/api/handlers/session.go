package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lexroute/lexroute/pkg/api/response"
	"github.com/lexroute/lexroute/pkg/engine"
	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/store"
)

// SessionHandler handles session inspection endpoints.
type SessionHandler struct {
	engine *engine.Engine
	store  store.Store
	logger logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(eng *engine.Engine, st store.Store, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		engine: eng,
		store:  st,
		logger: log,
	}
}

// GetSummary handles GET /api/v1/sessions/{sessionID}/summary
func (h *SessionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	if sessionID == "" {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "Session ID is required", getRequestID(ctx))
		return
	}

	summary, err := h.engine.GetSessionSummary(ctx, sessionID)
	if err != nil {
		h.logger.Error("Failed to build session summary", "session_id", sessionID, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

// ListInteractions handles GET /api/v1/sessions/{sessionID}/interactions
func (h *SessionHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	if sessionID == "" {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "Session ID is required", getRequestID(ctx))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	records, err := h.store.ListBySession(ctx, sessionID, limit)
	if err != nil {
		h.logger.Error("Failed to list interactions", "session_id", sessionID, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"session_id":   sessionID,
		"interactions": records,
	})
}
