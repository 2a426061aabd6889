// Package scheduler defines the asynq task types and redis wiring shared by
// the API (enqueue side) and the scheduler binary (worker side).
package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskRankingSnapshot persists the current-month broker ranking for
// historical reporting.
const TaskRankingSnapshot = "ranking:snapshot"

// RankingSnapshotPayload is carried by TaskRankingSnapshot.
type RankingSnapshotPayload struct {
	RequestedAt time.Time `json:"requestedAt"`
}

// NewRankingSnapshotTask builds the snapshot task.
func NewRankingSnapshotTask() (*asynq.Task, error) {
	payload, err := json.Marshal(RankingSnapshotPayload{RequestedAt: time.Now()})
	if err != nil {
		return nil, fmt.Errorf("marshal ranking snapshot payload: %w", err)
	}
	return asynq.NewTask(TaskRankingSnapshot, payload), nil
}

// ParseRankingSnapshotPayload decodes the task's payload.
func ParseRankingSnapshotPayload(task *asynq.Task) (RankingSnapshotPayload, error) {
	var payload RankingSnapshotPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RankingSnapshotPayload{}, fmt.Errorf("unmarshal ranking snapshot payload: %w", err)
	}
	return payload, nil
}
