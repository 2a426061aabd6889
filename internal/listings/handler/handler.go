// Package handler exposes the listing lifecycle over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imobcrm_backend/internal/listings/repository"
	"imobcrm_backend/internal/listings/service"
	"imobcrm_backend/internal/listings/transport"
	"imobcrm_backend/platform/httpkit"
)

const (
	msgInvalidBody      = "invalid request body"
	msgInvalidListingID = "invalid listing id"
)

// Handler handles HTTP requests for listings.
type Handler struct {
	svc *service.Service
}

// New creates a new listings handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts authenticated listing routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateListing)
	group.GET("", h.ListListings)
	group.GET("/:id", h.GetListing)
	group.PATCH("/:id/status", h.UpdateStatus)
	group.POST("/:id/promote", h.Promote)
	group.POST("/:id/image-upload", h.ImageUpload)
}

// RegisterPublicRoutes mounts the unauthenticated QR code route.
func (h *Handler) RegisterPublicRoutes(group *gin.RouterGroup) {
	group.GET("/listings/:slug/qr", h.QRCode)
}

// CreateListing captures a new owner listing.
// POST /api/v1/listings
func (h *Handler) CreateListing(c *gin.Context) {
	var req transport.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.CreateListing(c.Request.Context(), req, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetListing retrieves a single listing.
// GET /api/v1/listings/:id
func (h *Handler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidListingID, nil)
		return
	}

	result, err := h.svc.GetListing(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListListings lists listings with optional filters.
// GET /api/v1/listings?status=&search=&limit=&offset=
func (h *Handler) ListListings(c *gin.Context) {
	params := repository.ListListingsParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	params.Limit, _ = strconv.Atoi(c.Query("limit"))
	params.Offset, _ = strconv.Atoi(c.Query("offset"))

	result, err := h.svc.ListListings(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus changes the listing's lifecycle label.
// PATCH /api/v1/listings/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidListingID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Promote promotes the listing into the property catalog.
// POST /api/v1/listings/:id/promote
func (h *Handler) Promote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidListingID, nil)
		return
	}

	result, err := h.svc.PromoteToProperty(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ImageUpload issues a pre-signed upload URL for the cover image.
// POST /api/v1/listings/:id/image-upload
func (h *Handler) ImageUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidListingID, nil)
		return
	}

	var req transport.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	result, err := h.svc.GenerateImageUploadURL(c.Request.Context(), id, req.ContentType)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// QRCode renders a PNG QR code pointing at the listing's public page.
// GET /api/v1/public/listings/:slug/qr
func (h *Handler) QRCode(c *gin.Context) {
	png, err := h.svc.QRCodePNG(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
