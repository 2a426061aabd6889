package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Agent is a member of the sales team.
type Agent struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     *string   `db:"phone"`
	AvatarURL *string   `db:"avatar_url"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CreateAgentParams contains data for registering an agent.
type CreateAgentParams struct {
	Name      string
	Email     string
	Phone     *string
	AvatarURL *string
}

// Repository defines persistence operations for the agent directory.
type Repository interface {
	CreateAgent(ctx context.Context, params CreateAgentParams) (Agent, error)
	GetAgentByID(ctx context.Context, id uuid.UUID) (Agent, error)
	ListAgents(ctx context.Context, activeOnly bool) ([]Agent, error)
}
