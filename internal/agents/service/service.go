// Package service provides business logic for the agent directory.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"imobcrm_backend/internal/agents/repository"
	"imobcrm_backend/internal/agents/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
	"imobcrm_backend/platform/phone"
)

// Service provides agent directory operations.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new agents service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateAgent registers a new team member.
func (s *Service) CreateAgent(ctx context.Context, req transport.CreateAgentRequest) (transport.AgentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.AgentResponse{}, apperr.Validation("name is required")
	}

	normalizedPhone := req.Phone
	if req.Phone != nil && *req.Phone != "" {
		n := phone.NormalizeE164(*req.Phone)
		normalizedPhone = &n
	}

	agent, err := s.repo.CreateAgent(ctx, repository.CreateAgentParams{
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     normalizedPhone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return transport.AgentResponse{}, err
	}
	return toAgentResponse(agent), nil
}

// GetAgent retrieves a single agent.
func (s *Service) GetAgent(ctx context.Context, id uuid.UUID) (transport.AgentResponse, error) {
	agent, err := s.repo.GetAgentByID(ctx, id)
	if err != nil {
		return transport.AgentResponse{}, err
	}
	return toAgentResponse(agent), nil
}

// ListAgents lists team members, optionally only active ones.
func (s *Service) ListAgents(ctx context.Context, activeOnly bool) ([]transport.AgentResponse, error) {
	agents, err := s.repo.ListAgents(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]transport.AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, toAgentResponse(a))
	}
	return out, nil
}

func toAgentResponse(a repository.Agent) transport.AgentResponse {
	return transport.AgentResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		AvatarURL: a.AvatarURL,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}
