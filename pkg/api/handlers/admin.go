package handlers

import (
	"net/http"

	"github.com/lexroute/lexroute/pkg/api/response"
	"github.com/lexroute/lexroute/pkg/engine"
	"github.com/lexroute/lexroute/pkg/logger"
)

// AdminHandler handles operational endpoints.
type AdminHandler struct {
	engine *engine.Engine
	logger logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(eng *engine.Engine, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		engine: eng,
		logger: log,
	}
}

type retrainResponse struct {
	Version     int64   `json:"version"`
	Accuracy    float64 `json:"accuracy"`
	Fingerprint string  `json:"fingerprint"`
}

// Retrain handles POST /api/v1/admin/retrain
func (h *AdminHandler) Retrain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	force := r.URL.Query().Get("force") == "true"

	snap, err := h.engine.Retrain(ctx, force)
	if err != nil {
		h.logger.Warn("Retrain request failed", "force", force, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, retrainResponse{
		Version:     snap.Version,
		Accuracy:    snap.Accuracy,
		Fingerprint: snap.Fingerprint,
	})
}
