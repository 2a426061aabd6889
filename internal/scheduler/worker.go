package scheduler

import (
	"context"

	"github.com/hibiken/asynq"

	rankingservice "imobcrm_backend/internal/ranking/service"
	"imobcrm_backend/platform/logger"
)

// Worker handles scheduled tasks.
type Worker struct {
	ranking *rankingservice.Service
	log     *logger.Logger
}

// NewWorker creates a task worker.
func NewWorker(ranking *rankingservice.Service, log *logger.Logger) *Worker {
	return &Worker{ranking: ranking, log: log}
}

// Register mounts the worker's handlers on the asynq mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskRankingSnapshot, w.HandleRankingSnapshot)
}

// HandleRankingSnapshot computes and persists the current-month ranking.
func (w *Worker) HandleRankingSnapshot(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRankingSnapshotPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("ranking snapshot started", "requested_at", payload.RequestedAt)
	if err := w.ranking.Snapshot(ctx); err != nil {
		w.log.Error("ranking snapshot failed", "error", err)
		return err
	}
	w.log.Info("ranking snapshot completed")
	return nil
}
