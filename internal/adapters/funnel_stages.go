// Package adapters wires bounded contexts together by implementing one
// module's ports on top of another module's repository.
package adapters

import (
	"context"

	"github.com/google/uuid"

	funnelrepo "imobcrm_backend/internal/funnel/repository"
	leadsports "imobcrm_backend/internal/leads/ports"
)

// FunnelStageDirectory adapts the funnel registry to the leads module's
// StageDirectory port.
type FunnelStageDirectory struct {
	repo funnelrepo.Repository
}

// NewFunnelStageDirectory creates the adapter.
func NewFunnelStageDirectory(repo funnelrepo.Repository) *FunnelStageDirectory {
	return &FunnelStageDirectory{repo: repo}
}

// GetStage resolves a stage by ID.
func (d *FunnelStageDirectory) GetStage(ctx context.Context, id uuid.UUID) (leadsports.StageRef, error) {
	stage, err := d.repo.GetStage(ctx, id)
	if err != nil {
		return leadsports.StageRef{}, err
	}
	return leadsports.StageRef{
		ID:         stage.ID,
		PipelineID: stage.PipelineID,
		Name:       stage.Name,
		Position:   stage.Position,
	}, nil
}

// Compile-time check.
var _ leadsports.StageDirectory = (*FunnelStageDirectory)(nil)
