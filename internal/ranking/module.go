// Package ranking provides the broker ranking bounded context.
package ranking

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/internal/ranking/cache"
	"imobcrm_backend/internal/ranking/handler"
	"imobcrm_backend/internal/ranking/ports"
	"imobcrm_backend/internal/ranking/repository"
	"imobcrm_backend/internal/ranking/service"
	"imobcrm_backend/platform/logger"
)

// Module is the ranking bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the ranking module. A nil redis client
// disables the cache.
func NewModule(pool *pgxpool.Pool, agents ports.AgentDirectory, redisClient *redis.Client, cacheTTL time.Duration, log *logger.Logger) *Module {
	repo := repository.New(pool)

	var c service.Cache
	if redisClient != nil {
		c = cache.New(redisClient, cacheTTL)
	}

	svc := service.New(repo, agents, c, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "ranking"
}

// Service returns the ranking service for scheduler wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts ranking routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/ranking")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
