// Command api runs the CRM HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"imobcrm_backend/internal/adapters"
	"imobcrm_backend/internal/agents"
	"imobcrm_backend/internal/catalog"
	"imobcrm_backend/internal/email"
	"imobcrm_backend/internal/events"
	"imobcrm_backend/internal/funnel"
	apphttp "imobcrm_backend/internal/http"
	"imobcrm_backend/internal/http/router"
	"imobcrm_backend/internal/leads"
	"imobcrm_backend/internal/listings"
	listingsports "imobcrm_backend/internal/listings/ports"
	"imobcrm_backend/internal/notification"
	"imobcrm_backend/internal/ranking"
	"imobcrm_backend/internal/sales"
	"imobcrm_backend/internal/storage"
	"imobcrm_backend/platform/config"
	"imobcrm_backend/platform/db"
	"imobcrm_backend/platform/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	migrationsDir   = "migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := withRetry(ctx, log, "run migrations", func() error {
		return db.RunMigrations(ctx, cfg, migrationsDir)
	}); err != nil {
		return err
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "connect database", func() error {
		var err error
		pool, err = db.NewPool(ctx, cfg)
		return err
	}); err != nil {
		return err
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
	} else {
		log.Warn("redis not configured, ranking cache disabled")
	}

	var uploads listingsports.UploadURLProvider = storage.Disabled{}
	if cfg.IsMinIOEnabled() {
		store, err := storage.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		uploads = store
	} else {
		log.Warn("object storage not configured, image uploads disabled")
	}

	var sender email.Sender = email.NopSender{}
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg, log)
	}
	notification.New(sender, log, cfg.GetLeadInboxAddress()).Register(bus)

	funnelModule := funnel.NewModule(pool, log)
	agentsModule := agents.NewModule(pool, log)
	catalogModule := catalog.NewModule(pool, log)

	stageDirectory := adapters.NewFunnelStageDirectory(funnelModule.Repository())
	catalogWriter := adapters.NewCatalogWriter(catalogModule.Repository())
	agentDirectory := adapters.NewAgentDirectory(agentsModule.Repository())

	leadsModule := leads.NewModule(pool, stageDirectory, bus, log)
	listingsModule := listings.NewModule(pool, catalogWriter, uploads, bus, log, cfg.GetPublicSiteURL())
	salesModule := sales.NewModule(pool, bus, log)
	rankingModule := ranking.NewModule(pool, agentDirectory, redisClient, cfg.GetRankingCacheTTL(), log)

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			funnelModule,
			leadsModule,
			listingsModule,
			catalogModule,
			agentsModule,
			salesModule,
			rankingModule,
		},
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// withRetry runs op with backoff, giving dependencies like postgres time to
// come up during a deploy.
func withRetry(ctx context.Context, log *logger.Logger, name string, op func() error) error {
	const attempts = 5

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		log.Warn("startup step failed, retrying", "step", name, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		}
	}
	return fmt.Errorf("%s: %w", name, err)
}
