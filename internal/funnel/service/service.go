// Package service provides business logic for the pipeline/stage registry.
package service

import (
	"context"

	"github.com/google/uuid"

	"imobcrm_backend/internal/funnel/repository"
	"imobcrm_backend/internal/funnel/transport"
	"imobcrm_backend/platform/logger"
)

// Service provides read access to the stage registry.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new funnel service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetStages returns a pipeline's stages in ascending position order.
// Fails with NotFound when the pipeline does not exist; a pipeline with no
// stages yet yields an empty list, not an error.
func (s *Service) GetStages(ctx context.Context, pipelineID uuid.UUID) (transport.StageListResponse, error) {
	pipeline, err := s.repo.GetPipeline(ctx, pipelineID)
	if err != nil {
		return transport.StageListResponse{}, err
	}

	stages, err := s.repo.ListStages(ctx, pipelineID)
	if err != nil {
		return transport.StageListResponse{}, err
	}

	return toStageListResponse(pipeline, stages), nil
}

// ListPipelines returns all pipelines.
func (s *Service) ListPipelines(ctx context.Context) ([]transport.PipelineResponse, error) {
	pipelines, err := s.repo.ListPipelines(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.PipelineResponse, 0, len(pipelines))
	for _, p := range pipelines {
		out = append(out, toPipelineResponse(p))
	}
	return out, nil
}

func toPipelineResponse(p repository.Pipeline) transport.PipelineResponse {
	return transport.PipelineResponse{ID: p.ID, Name: p.Name}
}

func toStageListResponse(p repository.Pipeline, stages []repository.Stage) transport.StageListResponse {
	out := transport.StageListResponse{
		Pipeline: toPipelineResponse(p),
		Stages:   make([]transport.StageResponse, 0, len(stages)),
	}
	for _, s := range stages {
		out.Stages = append(out.Stages, transport.StageResponse{
			ID:         s.ID,
			PipelineID: s.PipelineID,
			Name:       s.Name,
			Position:   s.Position,
		})
	}
	return out
}
