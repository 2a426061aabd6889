package adapters

import (
	"context"

	"github.com/google/uuid"

	agentsrepo "imobcrm_backend/internal/agents/repository"
	rankingports "imobcrm_backend/internal/ranking/ports"
)

// AgentDirectory adapts the agents repository to the ranking module's
// directory port.
type AgentDirectory struct {
	repo agentsrepo.Repository
}

// NewAgentDirectory creates the adapter.
func NewAgentDirectory(repo agentsrepo.Repository) *AgentDirectory {
	return &AgentDirectory{repo: repo}
}

// GetAgent resolves an agent by ID.
func (d *AgentDirectory) GetAgent(ctx context.Context, id uuid.UUID) (rankingports.AgentRef, error) {
	agent, err := d.repo.GetAgentByID(ctx, id)
	if err != nil {
		return rankingports.AgentRef{}, err
	}
	return rankingports.AgentRef{
		ID:        agent.ID,
		Name:      agent.Name,
		AvatarURL: agent.AvatarURL,
	}, nil
}

// Compile-time check.
var _ rankingports.AgentDirectory = (*AgentDirectory)(nil)
