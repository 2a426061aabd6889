// Package ports declares the interfaces the leads module needs from other
// bounded contexts. Adapters in internal/adapters satisfy them.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// StageRef is the slice of a pipeline stage the tracker cares about.
type StageRef struct {
	ID         uuid.UUID
	PipelineID uuid.UUID
	Name       string
	Position   int
}

// StageDirectory resolves pipeline stages for move validation.
type StageDirectory interface {
	// GetStage returns the stage or an apperr.NotFound error.
	GetStage(ctx context.Context, id uuid.UUID) (StageRef, error)
}
