// Package transport defines request/response DTOs for the catalog module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreatePropertyRequest is the payload for publishing a property directly,
// outside the listing promotion flow.
type CreatePropertyRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Type         string  `json:"type" binding:"required"`
	PriceCents   int64   `json:"priceCents" binding:"required,gt=0"`
	Address      *string `json:"address,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	City         *string `json:"city,omitempty"`
	OwnerName    string  `json:"ownerName" binding:"required"`
	OwnerPhone   string  `json:"ownerPhone" binding:"required"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// PropertyResponse is the API representation of a property.
type PropertyResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	PriceCents      int64      `json:"priceCents"`
	Address         *string    `json:"address,omitempty"`
	Neighborhood    *string    `json:"neighborhood,omitempty"`
	City            *string    `json:"city,omitempty"`
	OwnerName       string     `json:"ownerName"`
	OwnerPhone      string     `json:"ownerPhone"`
	ImageURL        *string    `json:"imageUrl,omitempty"`
	SourceListingID *uuid.UUID `json:"sourceListingId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PropertyListResponse is a paginated page of properties.
type PropertyListResponse struct {
	Items  []PropertyResponse `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
