package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Pipeline is a named sales funnel owning an ordered set of stages.
type Pipeline struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Stage is one ordered step inside a pipeline. Position values are unique per
// pipeline and define the stage order; they need not be contiguous.
type Stage struct {
	ID         uuid.UUID `db:"id"`
	PipelineID uuid.UUID `db:"pipeline_id"`
	Name       string    `db:"name"`
	Position   int       `db:"position"`
	CreatedAt  time.Time `db:"created_at"`
}

// CreateStageParams contains data for creating a stage.
type CreateStageParams struct {
	PipelineID uuid.UUID
	Name       string
	Position   int
}

// Repository defines persistence operations for pipelines and stages.
type Repository interface {
	GetPipeline(ctx context.Context, id uuid.UUID) (Pipeline, error)
	GetPipelineByName(ctx context.Context, name string) (Pipeline, error)
	ListPipelines(ctx context.Context) ([]Pipeline, error)
	ListStages(ctx context.Context, pipelineID uuid.UUID) ([]Stage, error)
	GetStage(ctx context.Context, id uuid.UUID) (Stage, error)
	CreatePipeline(ctx context.Context, name string) (Pipeline, error)
	CreateStage(ctx context.Context, params CreateStageParams) (Stage, error)
}
