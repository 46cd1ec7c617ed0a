package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lexroute/lexroute/pkg/api/response"
	"github.com/lexroute/lexroute/pkg/engine"
	"github.com/lexroute/lexroute/pkg/logger"
)

const maxQueryLength = 4096

// QueryHandler handles query submission endpoints.
type QueryHandler struct {
	engine *engine.Engine
	logger logger.Logger
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(eng *engine.Engine, log logger.Logger) *QueryHandler {
	return &QueryHandler{
		engine: eng,
		logger: log,
	}
}

type queryRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Query     string `json:"query"`
}

// HandleQuery handles POST /api/v1/queries
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "Invalid request body", getRequestID(ctx))
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		response.Error(w, http.StatusBadRequest, response.ErrCodeValidationFailed, "Query is required", getRequestID(ctx))
		return
	}
	if len(req.Query) > maxQueryLength {
		response.Error(w, http.StatusBadRequest, response.ErrCodeValidationFailed, "Query too long", getRequestID(ctx))
		return
	}

	result, err := h.engine.HandleQuery(ctx, req.SessionID, req.Query)
	if err != nil {
		h.logger.Error("Failed to handle query", "session_id", req.SessionID, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Classify handles POST /api/v1/queries/classify. It runs the
// classifier without routing, recording, or policy updates.
func (h *QueryHandler) Classify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "Invalid request body", getRequestID(ctx))
		return
	}

	result, err := h.engine.ClassifyOnly(req.Query)
	if err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, result)
}
