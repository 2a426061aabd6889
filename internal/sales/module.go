// Package sales provides the closed-sale recording bounded context.
package sales

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/internal/events"
	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/internal/sales/handler"
	"imobcrm_backend/internal/sales/repository"
	"imobcrm_backend/internal/sales/service"
	"imobcrm_backend/platform/logger"
)

// Module is the sales bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the sales module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sales"
}

// RegisterRoutes mounts sales routes on the admin group: recording closed
// deals is a back-office operation.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Admin.Group("/transactions")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
