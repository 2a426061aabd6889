// Package agents provides the agent directory bounded context.
package agents

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/internal/agents/handler"
	"imobcrm_backend/internal/agents/repository"
	"imobcrm_backend/internal/agents/service"
	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/platform/logger"
)

// Module is the agents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
	service *service.Service
}

// NewModule creates and initializes the agents module.
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
	return "agents"
}

// Repository returns the directory repository for adapter wiring.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts agent routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/agents"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/agents"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
