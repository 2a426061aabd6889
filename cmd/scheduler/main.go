// Command scheduler runs the asynq worker and the periodic task scheduler.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/internal/adapters"
	agentsrepo "imobcrm_backend/internal/agents/repository"
	rankingrepo "imobcrm_backend/internal/ranking/repository"
	rankingservice "imobcrm_backend/internal/ranking/service"
	"imobcrm_backend/internal/scheduler"
	"imobcrm_backend/platform/config"
	"imobcrm_backend/platform/db"
	"imobcrm_backend/platform/logger"
)

// rankingSnapshotSpec runs the snapshot every night at 03:00.
const rankingSnapshotSpec = "0 3 * * *"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("scheduler exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for the scheduler")
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

	agentDirectory := adapters.NewAgentDirectory(agentsrepo.New(pool))
	ranking := rankingservice.New(rankingrepo.New(pool), agentDirectory, nil, log)
	worker := scheduler.NewWorker(ranking, log)

	redisOpt, err := scheduler.RedisOpt(cfg)
	if err != nil {
		return err
	}

	queue := cfg.GetAsynqQueueName()
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{queue: 1},
	})

	mux := asynq.NewServeMux()
	worker.Register(mux)

	periodic := asynq.NewScheduler(redisOpt, nil)
	snapshotTask, err := scheduler.NewRankingSnapshotTask()
	if err != nil {
		return err
	}
	if _, err := periodic.Register(rankingSnapshotSpec, snapshotTask, asynq.Queue(queue)); err != nil {
		return fmt.Errorf("register snapshot schedule: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("asynq worker started", "queue", queue)
		if err := server.Run(mux); err != nil {
			errCh <- fmt.Errorf("asynq server: %w", err)
		}
	}()
	go func() {
		log.Info("periodic scheduler started", "snapshot_spec", rankingSnapshotSpec)
		if err := periodic.Run(); err != nil {
			errCh <- fmt.Errorf("asynq scheduler: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	periodic.Shutdown()
	server.Shutdown()
	return nil
}

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
