// Package ports declares the interfaces the ranking module needs from other
// bounded contexts. Adapters in internal/adapters satisfy them.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// AgentRef is the slice of an agent the ranking cares about.
type AgentRef struct {
	ID        uuid.UUID
	Name      string
	AvatarURL *string
}

// AgentDirectory resolves agents for avatar enrichment.
type AgentDirectory interface {
	// GetAgent returns the agent or an apperr.NotFound error.
	GetAgent(ctx context.Context, id uuid.UUID) (AgentRef, error)
}
