package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexroute/lexroute/pkg/api/response"
	"github.com/lexroute/lexroute/pkg/engine"
	"github.com/lexroute/lexroute/pkg/logger"
)

// FeedbackHandler handles feedback submission endpoints.
type FeedbackHandler struct {
	engine *engine.Engine
	logger logger.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(eng *engine.Engine, log logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		engine: eng,
		logger: log,
	}
}

type feedbackRequest struct {
	Vote         string  `json:"vote"`
	DwellSeconds float64 `json:"dwell_seconds,omitempty"`
}

// RecordFeedback handles POST /api/v1/interactions/{interactionID}/feedback
func (h *FeedbackHandler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	interactionID := chi.URLParam(r, "interactionID")

	if interactionID == "" {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "Interaction ID is required", getRequestID(ctx))
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "Invalid request body", getRequestID(ctx))
		return
	}

	if req.DwellSeconds < 0 {
		response.Error(w, http.StatusBadRequest, response.ErrCodeValidationFailed, "Dwell seconds must be non-negative", getRequestID(ctx))
		return
	}

	result, err := h.engine.RecordFeedback(ctx, interactionID, req.Vote, req.DwellSeconds)
	if err != nil {
		h.logger.Warn("Failed to record feedback", "interaction_id", interactionID, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, result)
}
