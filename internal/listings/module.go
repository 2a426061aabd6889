// Package listings provides the listing lifecycle bounded context.
package listings

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/internal/events"
	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/internal/listings/handler"
	"imobcrm_backend/internal/listings/ports"
	"imobcrm_backend/internal/listings/repository"
	"imobcrm_backend/internal/listings/service"
	"imobcrm_backend/platform/logger"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the listings module. The catalog writer
// is an adapter over the catalog repository; uploads come from the storage
// service.
func NewModule(pool *pgxpool.Pool, catalog ports.CatalogWriter, uploads ports.UploadURLProvider, bus events.Bus, log *logger.Logger, publicSiteURL string) *Module {
	repo := repository.New(pool, catalog)
	svc := service.New(repo, uploads, bus, log, publicSiteURL)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// RegisterRoutes mounts listing routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/listings")
	m.handler.RegisterRoutes(group)
	m.handler.RegisterPublicRoutes(ctx.Public)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
