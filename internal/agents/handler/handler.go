// Package handler exposes the agent directory over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imobcrm_backend/internal/agents/service"
	"imobcrm_backend/internal/agents/transport"
	"imobcrm_backend/platform/httpkit"
)

const (
	msgInvalidBody    = "invalid request body"
	msgInvalidAgentID = "invalid agent id"
)

// Handler handles HTTP requests for agents.
type Handler struct {
	svc *service.Service
}

// New creates a new agents handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts read routes on the protected group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.ListAgents)
	group.GET("/:id", h.GetAgent)
}

// RegisterAdminRoutes mounts write routes on the admin group.
func (h *Handler) RegisterAdminRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateAgent)
}

// CreateAgent registers a new team member.
// POST /api/v1/admin/agents
func (h *Handler) CreateAgent(c *gin.Context) {
	var req transport.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	result, err := h.svc.CreateAgent(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetAgent retrieves a single agent.
// GET /api/v1/agents/:id
func (h *Handler) GetAgent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidAgentID, nil)
		return
	}

	result, err := h.svc.GetAgent(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListAgents lists agents.
// GET /api/v1/agents?active=true
func (h *Handler) ListAgents(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	result, err := h.svc.ListAgents(c.Request.Context(), activeOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
