// Package service provides business logic for the lead funnel tracker.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"imobcrm_backend/internal/events"
	"imobcrm_backend/internal/leads/ports"
	"imobcrm_backend/internal/leads/repository"
	"imobcrm_backend/internal/leads/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
	"imobcrm_backend/platform/phone"
)

const (
	// SourceManual is the source recorded for leads created by an agent.
	SourceManual = "Manual"
	// SourceWhatsAppBot is the source recorded for leads arriving through
	// the public intake endpoint.
	SourceWhatsAppBot = "Bot WhatsApp"

	// statusNew is the label every lead starts with.
	statusNew = "Novo"

	defaultLimit = 20
	maxLimit     = 100
)

// Service provides lead funnel operations.
type Service struct {
	repo   repository.Repository
	stages ports.StageDirectory
	bus    events.Bus
	log    *logger.Logger
}

// New creates a new leads service.
func New(repo repository.Repository, stages ports.StageDirectory, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, stages: stages, bus: bus, log: log}
}

// CreateLead registers a new lead at the top of the funnel. The phone is
// normalized to E.164 and the stage starts unset.
func (s *Service) CreateLead(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.LeadResponse{}, apperr.Validation("name is required")
	}

	rawPhone := strings.TrimSpace(req.Phone)
	if rawPhone == "" {
		return transport.LeadResponse{}, apperr.Validation("phone is required")
	}

	normalized, err := phone.ParseE164(rawPhone)
	if err != nil {
		return transport.LeadResponse{}, apperr.Validation("invalid phone number")
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = SourceManual
	}

	lead, err := s.repo.CreateLead(ctx, repository.CreateLeadParams{
		Name:     name,
		Phone:    normalized,
		Email:    req.Email,
		Interest: req.Interest,
		Source:   source,
		Status:   statusNew,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	email := ""
	if lead.Email != nil {
		email = *lead.Email
	}
	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     email,
		Source:    lead.Source,
	})

	return toLeadResponse(lead), nil
}

// CaptureIntakeLead handles the public intake path. Identical to CreateLead
// except the source is forced to the WhatsApp bot.
func (s *Service) CaptureIntakeLead(ctx context.Context, req transport.IntakeLeadRequest) (transport.LeadResponse, error) {
	return s.CreateLead(ctx, transport.CreateLeadRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Interest: req.Interest,
		Source:   SourceWhatsAppBot,
	})
}

// GetLead retrieves a single lead.
func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetLeadByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

// MoveLead re-stages a lead within its pipeline. Moving to the stage the
// lead already occupies is a no-op. A stage belonging to a different
// pipeline than the lead's current stage is rejected.
func (s *Service) MoveLead(ctx context.Context, leadID, stageID, movedByID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetLeadByID(ctx, leadID)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	target, err := s.stages.GetStage(ctx, stageID)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	if lead.StageID != nil {
		if *lead.StageID == target.ID {
			return toLeadResponse(lead), nil
		}
		current, err := s.stages.GetStage(ctx, *lead.StageID)
		if err != nil {
			return transport.LeadResponse{}, err
		}
		if current.PipelineID != target.PipelineID {
			return transport.LeadResponse{}, apperr.Validation("stage belongs to a different pipeline")
		}
	}

	if err := s.repo.UpdateLeadStage(ctx, leadID, target.ID); err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadStageMoved{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		PipelineID: target.PipelineID,
		OldStageID: lead.StageID,
		NewStageID: target.ID,
		MovedByID:  movedByID,
	})

	updated, err := s.repo.GetLeadByID(ctx, leadID)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(updated), nil
}

// ListLeads lists leads newest first with optional filters.
func (s *Service) ListLeads(ctx context.Context, params repository.ListLeadsParams) (transport.LeadListResponse, error) {
	if params.Limit <= 0 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	items, total, err := s.repo.ListLeads(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	out := transport.LeadListResponse{
		Items:  make([]transport.LeadResponse, 0, len(items)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, lead := range items {
		out.Items = append(out.Items, toLeadResponse(lead))
	}
	return out, nil
}

func toLeadResponse(l repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:        l.ID,
		Name:      l.Name,
		Phone:     l.Phone,
		Email:     l.Email,
		Interest:  l.Interest,
		Source:    l.Source,
		Status:    l.Status,
		StageID:   l.StageID,
		StageName: l.StageName,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
