package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lexroute/lexroute/pkg/api/response"
	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/routes"
)

// RoutesHandler handles route catalog endpoints.
type RoutesHandler struct {
	selector *routes.Selector
	logger   logger.Logger
}

// NewRoutesHandler creates a new routes handler.
func NewRoutesHandler(selector *routes.Selector, log logger.Logger) *RoutesHandler {
	return &RoutesHandler{
		selector: selector,
		logger:   log,
	}
}

// Search handles GET /api/v1/routes/search?q=term
func (h *RoutesHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		response.Error(w, http.StatusBadRequest, response.ErrCodeValidationFailed, "Query parameter q is required", getRequestID(ctx))
		return
	}

	matches := h.selector.Search(term)
	response.JSON(w, http.StatusOK, map[string]any{
		"query":  term,
		"routes": matches,
	})
}

// GetByDomain handles GET /api/v1/routes/{domain}
func (h *RoutesHandler) GetByDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	domain := routes.Domain(chi.URLParam(r, "domain"))
	if !domain.Valid() {
		response.Error(w, http.StatusNotFound, response.ErrCodeNotFound, "Unknown legal domain", getRequestID(ctx))
		return
	}

	proposed, glossary := h.selector.Propose(domain)
	response.JSON(w, http.StatusOK, map[string]any{
		"domain":   domain,
		"routes":   proposed,
		"glossary": glossary,
	})
}
