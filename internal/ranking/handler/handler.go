// Package handler exposes the broker ranking over HTTP.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imobcrm_backend/internal/ranking/service"
	"imobcrm_backend/platform/httpkit"
)

// Handler handles HTTP requests for the ranking.
type Handler struct {
	svc *service.Service
}

// New creates a new ranking handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts ranking routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.GetRanking)
}

// GetRanking returns the broker ranking for a window, defaulting to the
// current month.
// GET /api/v1/ranking?from=&to=
func (h *Handler) GetRanking(c *gin.Context) {
	var from, to *time.Time

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid from timestamp", nil)
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid to timestamp", nil)
			return
		}
		to = &parsed
	}

	result, err := h.svc.GetRanking(c.Request.Context(), from, to)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
