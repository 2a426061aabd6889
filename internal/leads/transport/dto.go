// Package transport defines request/response DTOs for the leads module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateLeadRequest is the payload for creating a lead.
type CreateLeadRequest struct {
	Name     string  `json:"name" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Interest *string `json:"interest,omitempty"`
	Source   string  `json:"source,omitempty"`
}

// IntakeLeadRequest is the payload accepted on the public intake endpoint.
// The source is fixed server-side, callers cannot choose it.
type IntakeLeadRequest struct {
	Name     string  `json:"name" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Interest *string `json:"interest,omitempty"`
}

// MoveLeadRequest is the payload for moving a lead to another stage.
type MoveLeadRequest struct {
	StageID uuid.UUID `json:"stageId" binding:"required"`
}

// LeadResponse is the API representation of a lead.
type LeadResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     *string    `json:"email,omitempty"`
	Interest  *string    `json:"interest,omitempty"`
	Source    string     `json:"source"`
	Status    string     `json:"status"`
	StageID   *uuid.UUID `json:"stageId,omitempty"`
	StageName string     `json:"stageName"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LeadListResponse is a paginated page of leads.
type LeadListResponse struct {
	Items  []LeadResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
