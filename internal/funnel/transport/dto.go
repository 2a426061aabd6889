// Package transport defines the funnel module's request and response DTOs.
package transport

import "github.com/google/uuid"

// PipelineResponse is the API shape of a pipeline.
type PipelineResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// StageResponse is the API shape of a pipeline stage.
type StageResponse struct {
	ID         uuid.UUID `json:"id"`
	PipelineID uuid.UUID `json:"pipelineId"`
	Name       string    `json:"name"`
	Position   int       `json:"position"`
}

// StageListResponse is the ordered stage listing for one pipeline.
type StageListResponse struct {
	Pipeline PipelineResponse `json:"pipeline"`
	Stages   []StageResponse  `json:"stages"`
}
