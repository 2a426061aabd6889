// Package handler exposes the lead funnel tracker over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imobcrm_backend/internal/leads/repository"
	"imobcrm_backend/internal/leads/service"
	"imobcrm_backend/internal/leads/transport"
	"imobcrm_backend/platform/httpkit"
)

const (
	msgInvalidBody   = "invalid request body"
	msgInvalidLeadID = "invalid lead id"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
}

// New creates a new leads handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts authenticated lead routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateLead)
	group.GET("", h.ListLeads)
	group.GET("/:id", h.GetLead)
	group.PATCH("/:id/stage", h.MoveLead)
}

// RegisterPublicRoutes mounts the unauthenticated intake route.
func (h *Handler) RegisterPublicRoutes(group *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	group.POST("/leads/intake", rateLimit, h.IntakeLead)
}

// CreateLead registers a lead on behalf of an authenticated agent.
// POST /api/v1/leads
func (h *Handler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	result, err := h.svc.CreateLead(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// IntakeLead registers a lead arriving from the WhatsApp bot.
// POST /api/v1/public/leads/intake
func (h *Handler) IntakeLead(c *gin.Context) {
	var req transport.IntakeLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	result, err := h.svc.CaptureIntakeLead(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetLead retrieves a single lead.
// GET /api/v1/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	result, err := h.svc.GetLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// MoveLead moves a lead to another stage of its pipeline.
// PATCH /api/v1/leads/:id/stage
func (h *Handler) MoveLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	var req transport.MoveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.MoveLead(c.Request.Context(), id, req.StageID, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListLeads lists leads newest first with optional filters.
// GET /api/v1/leads?source=&stageId=&search=&limit=&offset=
func (h *Handler) ListLeads(c *gin.Context) {
	params := repository.ListLeadsParams{
		Source: c.Query("source"),
		Search: c.Query("search"),
	}

	if raw := c.Query("stageId"); raw != "" {
		stageID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid stage id", nil)
			return
		}
		params.StageID = &stageID
	}

	params.Limit = queryInt(c, "limit", 0)
	params.Offset = queryInt(c, "offset", 0)

	result, err := h.svc.ListLeads(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	var value int
	for _, r := range raw {
		if r < '0' || r > '9' {
			return fallback
		}
		value = value*10 + int(r-'0')
	}
	return value
}
