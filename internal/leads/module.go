// Package leads provides the lead funnel tracker bounded context.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/internal/events"
	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/internal/leads/handler"
	"imobcrm_backend/internal/leads/ports"
	"imobcrm_backend/internal/leads/repository"
	"imobcrm_backend/internal/leads/service"
	"imobcrm_backend/platform/logger"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module. The stage directory is
// an adapter over the funnel registry.
func NewModule(pool *pgxpool.Pool, stages ports.StageDirectory, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, stages, bus, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(group)
	m.handler.RegisterPublicRoutes(ctx.Public, ctx.IntakeRateLimiter.RateLimit())
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
