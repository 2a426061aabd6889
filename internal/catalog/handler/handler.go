// Package handler exposes the property catalog over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imobcrm_backend/internal/catalog/repository"
	"imobcrm_backend/internal/catalog/service"
	"imobcrm_backend/internal/catalog/transport"
	"imobcrm_backend/platform/httpkit"
)

const (
	msgInvalidBody       = "invalid request body"
	msgInvalidPropertyID = "invalid property id"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts catalog routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateProperty)
	group.GET("", h.ListProperties)
	group.GET("/:id", h.GetProperty)
}

// CreateProperty publishes a property directly.
// POST /api/v1/properties
func (h *Handler) CreateProperty(c *gin.Context) {
	var req transport.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	result, err := h.svc.CreateProperty(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetProperty retrieves a single property.
// GET /api/v1/properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPropertyID, nil)
		return
	}

	result, err := h.svc.GetProperty(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListProperties lists properties with optional filters.
// GET /api/v1/properties?status=&type=&city=&limit=&offset=
func (h *Handler) ListProperties(c *gin.Context) {
	params := repository.ListPropertiesParams{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		City:   c.Query("city"),
	}
	params.Limit, _ = strconv.Atoi(c.Query("limit"))
	params.Offset, _ = strconv.Atoi(c.Query("offset"))

	result, err := h.svc.ListProperties(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
