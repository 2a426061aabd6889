package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective client moving through the funnel. The current stage
// is a nullable pointer; an unset stage reads as the virtual "Novo" column.
type Lead struct {
	ID        uuid.UUID  `db:"id"`
	Name      string     `db:"name"`
	Phone     string     `db:"phone"`
	Email     *string    `db:"email"`
	Interest  *string    `db:"interest"`
	Source    string     `db:"source"`
	Status    string     `db:"status"`
	StageID   *uuid.UUID `db:"stage_id"`
	StageName string     `db:"stage_name"` // resolved display name, "Novo" fallback
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// CreateLeadParams contains data for creating a lead.
type CreateLeadParams struct {
	Name     string
	Phone    string
	Email    *string
	Interest *string
	Source   string
	Status   string
}

// ListLeadsParams defines filters for listing leads.
type ListLeadsParams struct {
	Source  string
	StageID *uuid.UUID
	Search  string
	Limit   int
	Offset  int
}

// Repository defines persistence operations for leads.
type Repository interface {
	CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error)
	GetLeadByID(ctx context.Context, id uuid.UUID) (Lead, error)
	UpdateLeadStage(ctx context.Context, id uuid.UUID, stageID uuid.UUID) error
	ListLeads(ctx context.Context, params ListLeadsParams) ([]Lead, int, error)
}
