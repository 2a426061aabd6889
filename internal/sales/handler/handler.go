// Package handler exposes sales recording over HTTP.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imobcrm_backend/internal/sales/repository"
	"imobcrm_backend/internal/sales/service"
	"imobcrm_backend/internal/sales/transport"
	"imobcrm_backend/platform/httpkit"
)

const msgInvalidBody = "invalid request body"

// Handler handles HTTP requests for sales.
type Handler struct {
	svc *service.Service
}

// New creates a new sales handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts sales routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateTransaction)
	group.GET("", h.ListTransactions)
}

// CreateTransaction records a closed sale.
// POST /api/v1/admin/transactions
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req transport.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return
	}

	result, err := h.svc.CreateTransaction(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListTransactions lists closed sales.
// GET /api/v1/admin/transactions?agentId=&from=&to=&limit=&offset=
func (h *Handler) ListTransactions(c *gin.Context) {
	var params repository.ListTransactionsParams

	if raw := c.Query("agentId"); raw != "" {
		agentID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid agent id", nil)
			return
		}
		params.AgentID = &agentID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid from timestamp", nil)
			return
		}
		params.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid to timestamp", nil)
			return
		}
		params.To = &to
	}
	params.Limit, _ = strconv.Atoi(c.Query("limit"))
	params.Offset, _ = strconv.Atoi(c.Query("offset"))

	result, err := h.svc.ListTransactions(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
