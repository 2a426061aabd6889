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
	agentNotFoundMessage = "agent not found"

	uniqueViolationCode = "23505"
)

const agentColumns = `id, name, email, phone, avatar_url, active, created_at, updated_at`

// Repo implements the agents repository backed by postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new agents repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateAgent registers a new agent.
func (r *Repo) CreateAgent(ctx context.Context, params CreateAgentParams) (Agent, error) {
	query := `
		INSERT INTO agents (name, email, phone, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + agentColumns

	var a Agent
	if err := r.pool.QueryRow(ctx, query,
		params.Name, params.Email, params.Phone, params.AvatarURL,
	).Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.AvatarURL,
		&a.Active, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Agent{}, apperr.Conflict("agent email already registered")
		}
		return Agent{}, fmt.Errorf("create agent: %w", err)
	}
	return a, nil
}

// GetAgentByID retrieves a single agent.
func (r *Repo) GetAgentByID(ctx context.Context, id uuid.UUID) (Agent, error) {
	query := fmt.Sprintf("SELECT %s FROM agents WHERE id = $1", agentColumns)

	var a Agent
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.AvatarURL,
		&a.Active, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agent{}, apperr.NotFound(agentNotFoundMessage)
		}
		return Agent{}, fmt.Errorf("get agent by id: %w", err)
	}
	return a, nil
}

// ListAgents lists agents by name.
func (r *Repo) ListAgents(ctx context.Context, activeOnly bool) ([]Agent, error) {
	query := fmt.Sprintf("SELECT %s FROM agents", agentColumns)
	if activeOnly {
		query += " WHERE active"
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	items := make([]Agent, 0)
	for rows.Next() {
		var a Agent
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Phone, &a.AvatarURL,
			&a.Active, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		items = append(items, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate agents: %w", rows.Err())
	}
	return items, nil
}
