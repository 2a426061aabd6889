// Package funnel provides the pipeline/stage registry bounded context.
package funnel

import (
	"imobcrm_backend/internal/funnel/handler"
	"imobcrm_backend/internal/funnel/repository"
	"imobcrm_backend/internal/funnel/service"
	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the funnel bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
	service *service.Service
}

// NewModule creates and initializes the funnel module.
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
	return "funnel"
}

// Repository returns the stage registry repository for adapter wiring.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts funnel routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/funnel")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
