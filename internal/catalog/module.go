// Package catalog provides the property portfolio bounded context.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/internal/catalog/handler"
	"imobcrm_backend/internal/catalog/repository"
	"imobcrm_backend/internal/catalog/service"
	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/platform/logger"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
	service *service.Service
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	return &Module{
		handler: handler.New(svc),
		repo:    repo,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Repository returns the catalog repository for promotion wiring.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/properties")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
