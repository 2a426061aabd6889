// Package handler exposes the funnel registry over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imobcrm_backend/internal/funnel/service"
	"imobcrm_backend/platform/httpkit"
)

const msgInvalidPipelineID = "invalid pipeline id"

// Handler handles HTTP requests for the funnel registry.
type Handler struct {
	svc *service.Service
}

// New creates a new funnel handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts funnel routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/pipelines", h.ListPipelines)
	group.GET("/pipelines/:id/stages", h.GetStages)
}

// ListPipelines retrieves all pipelines.
// GET /api/v1/funnel/pipelines
func (h *Handler) ListPipelines(c *gin.Context) {
	result, err := h.svc.ListPipelines(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetStages retrieves a pipeline's ordered stages.
// GET /api/v1/funnel/pipelines/:id/stages
func (h *Handler) GetStages(c *gin.Context) {
	pipelineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPipelineID, nil)
		return
	}

	result, err := h.svc.GetStages(c.Request.Context(), pipelineID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
