// Package transport defines request/response DTOs for the listings module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateListingRequest is the payload for capturing a new owner listing.
type CreateListingRequest struct {
	OwnerName          string  `json:"ownerName" binding:"required"`
	OwnerPhone         *string `json:"ownerPhone,omitempty"`
	OwnerEmail         *string `json:"ownerEmail,omitempty" binding:"omitempty,email"`
	Address            string  `json:"address" binding:"required"`
	Neighborhood       *string `json:"neighborhood,omitempty"`
	City               *string `json:"city,omitempty"`
	ExpectedValueCents *int64  `json:"expectedValueCents,omitempty" binding:"omitempty,gt=0"`
	Notes              *string `json:"notes,omitempty"`
}

// UpdateStatusRequest is the payload for changing a listing's status label.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ImageUploadRequest asks for a pre-signed upload URL for the cover image.
type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// ImageUploadResponse carries the pre-signed PUT URL and the final public URL.
type ImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}

// ListingResponse is the API representation of a listing.
type ListingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Slug               string     `json:"slug"`
	OwnerName          string     `json:"ownerName"`
	OwnerPhone         *string    `json:"ownerPhone,omitempty"`
	OwnerEmail         *string    `json:"ownerEmail,omitempty"`
	Address            *string    `json:"address,omitempty"`
	Neighborhood       *string    `json:"neighborhood,omitempty"`
	City               *string    `json:"city,omitempty"`
	ExpectedValueCents *int64     `json:"expectedValueCents,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	Status             string     `json:"status"`
	ImageURL           *string    `json:"imageUrl,omitempty"`
	PropertyID         *uuid.UUID `json:"propertyId,omitempty"`
	CreatedByID        uuid.UUID  `json:"createdById"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ListingListResponse is a paginated page of listings.
type ListingListResponse struct {
	Items  []ListingResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// PromoteResponse is returned when a listing is promoted into the catalog.
type PromoteResponse struct {
	Listing    ListingResponse `json:"listing"`
	PropertyID uuid.UUID       `json:"propertyId"`
}
