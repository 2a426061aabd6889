package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/platform/apperr"
)

const (
	pipelineNotFoundMessage = "pipeline not found"
	stageNotFoundMessage    = "stage not found"

	uniqueViolationCode = "23505"
)

// Repo implements the funnel repository backed by postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new funnel repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetPipeline retrieves a pipeline by ID.
func (r *Repo) GetPipeline(ctx context.Context, id uuid.UUID) (Pipeline, error) {
	query := `SELECT id, name, created_at FROM pipelines WHERE id = $1`

	var p Pipeline
	if err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Pipeline{}, apperr.NotFound(pipelineNotFoundMessage)
		}
		return Pipeline{}, fmt.Errorf("get pipeline: %w", err)
	}
	return p, nil
}

// GetPipelineByName retrieves a pipeline by its unique name.
func (r *Repo) GetPipelineByName(ctx context.Context, name string) (Pipeline, error) {
	query := `SELECT id, name, created_at FROM pipelines WHERE name = $1`

	var p Pipeline
	if err := r.pool.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Pipeline{}, apperr.NotFound(pipelineNotFoundMessage)
		}
		return Pipeline{}, fmt.Errorf("get pipeline by name: %w", err)
	}
	return p, nil
}

// ListPipelines lists all pipelines by name.
func (r *Repo) ListPipelines(ctx context.Context) ([]Pipeline, error) {
	query := `SELECT id, name, created_at FROM pipelines ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()

	items := make([]Pipeline, 0)
	for rows.Next() {
		var p Pipeline
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate pipelines: %w", rows.Err())
	}

	return items, nil
}

// ListStages lists a pipeline's stages in ascending position order.
func (r *Repo) ListStages(ctx context.Context, pipelineID uuid.UUID) ([]Stage, error) {
	query := `
		SELECT id, pipeline_id, name, position, created_at
		FROM pipeline_stages
		WHERE pipeline_id = $1
		ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	items := make([]Stage, 0)
	for rows.Next() {
		var s Stage
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Name, &s.Position, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		items = append(items, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate stages: %w", rows.Err())
	}

	return items, nil
}

// GetStage retrieves a stage by ID.
func (r *Repo) GetStage(ctx context.Context, id uuid.UUID) (Stage, error) {
	query := `SELECT id, pipeline_id, name, position, created_at FROM pipeline_stages WHERE id = $1`

	var s Stage
	if err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.PipelineID, &s.Name, &s.Position, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stage{}, apperr.NotFound(stageNotFoundMessage)
		}
		return Stage{}, fmt.Errorf("get stage: %w", err)
	}
	return s, nil
}

// CreatePipeline creates a pipeline.
func (r *Repo) CreatePipeline(ctx context.Context, name string) (Pipeline, error) {
	query := `INSERT INTO pipelines (name) VALUES ($1) RETURNING id, name, created_at`

	var p Pipeline
	if err := r.pool.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Pipeline{}, apperr.Conflict("pipeline name already exists")
		}
		return Pipeline{}, fmt.Errorf("create pipeline: %w", err)
	}
	return p, nil
}

// CreateStage creates a stage. The UNIQUE(pipeline_id, position) constraint
// keeps positions a strict total order within the pipeline.
func (r *Repo) CreateStage(ctx context.Context, params CreateStageParams) (Stage, error) {
	query := `
		INSERT INTO pipeline_stages (pipeline_id, name, position)
		VALUES ($1, $2, $3)
		RETURNING id, pipeline_id, name, position, created_at`

	var s Stage
	if err := r.pool.QueryRow(ctx, query, params.PipelineID, params.Name, params.Position).Scan(
		&s.ID, &s.PipelineID, &s.Name, &s.Position, &s.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return Stage{}, apperr.Conflict("stage position already taken in this pipeline")
		}
		return Stage{}, fmt.Errorf("create stage: %w", err)
	}
	return s, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
