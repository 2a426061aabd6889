package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/platform/apperr"
)

const (
	leadNotFoundMessage = "lead not found"

	// defaultStageName is the display label for leads without an explicit
	// stage. Readers treat it as the pipeline's initial column.
	defaultStageName = "Novo"
)

// Repo implements the leads repository backed by postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateLead inserts a new lead with no stage assigned.
func (r *Repo) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	query := `
		INSERT INTO leads (name, phone, email, interest, source, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, phone, email, interest, source, status, stage_id, created_at, updated_at`

	var lead Lead
	if err := r.pool.QueryRow(ctx, query,
		params.Name, params.Phone, params.Email, params.Interest, params.Source, params.Status,
	).Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Interest,
		&lead.Source, &lead.Status, &lead.StageID, &lead.CreatedAt, &lead.UpdatedAt,
	); err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	lead.StageName = defaultStageName
	return lead, nil
}

// GetLeadByID retrieves a lead with its resolved stage name.
func (r *Repo) GetLeadByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `
		SELECT l.id, l.name, l.phone, l.email, l.interest, l.source, l.status, l.stage_id,
			COALESCE(s.name, $2) AS stage_name, l.created_at, l.updated_at
		FROM leads l
		LEFT JOIN pipeline_stages s ON s.id = l.stage_id
		WHERE l.id = $1`

	var lead Lead
	if err := r.pool.QueryRow(ctx, query, id, defaultStageName).Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Interest,
		&lead.Source, &lead.Status, &lead.StageID, &lead.StageName,
		&lead.CreatedAt, &lead.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// UpdateLeadStage points the lead at a new stage.
func (r *Repo) UpdateLeadStage(ctx context.Context, id uuid.UUID, stageID uuid.UUID) error {
	query := `UPDATE leads SET stage_id = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, stageID)
	if err != nil {
		return fmt.Errorf("update lead stage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// ListLeads lists leads newest first, each with its resolved stage name.
func (r *Repo) ListLeads(ctx context.Context, params ListLeadsParams) ([]Lead, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Source != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("l.source = $%d", argIdx))
		args = append(args, params.Source)
		argIdx++
	}

	if params.StageID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("l.stage_id = $%d", argIdx))
		args = append(args, *params.StageID)
		argIdx++
	}

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(l.name ILIKE $%d OR l.phone ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads l WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	args = append(args, defaultStageName, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT l.id, l.name, l.phone, l.email, l.interest, l.source, l.status, l.stage_id,
			COALESCE(s.name, $%d) AS stage_name, l.created_at, l.updated_at
		FROM leads l
		LEFT JOIN pipeline_stages s ON s.id = l.stage_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, whereClause, argIdx+1, argIdx+2)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Interest,
			&lead.Source, &lead.Status, &lead.StageID, &lead.StageName,
			&lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		items = append(items, lead)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", rows.Err())
	}

	return items, total, nil
}
