package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"imobcrm_backend/internal/listings/ports"
)

// Listing is an owner property offer being worked by the capture team.
// Expected values are stored as integer cents.
type Listing struct {
	ID                 uuid.UUID  `db:"id"`
	Slug               string     `db:"slug"`
	OwnerName          string     `db:"owner_name"`
	OwnerPhone         *string    `db:"owner_phone"`
	OwnerEmail         *string    `db:"owner_email"`
	Address            *string    `db:"address"`
	Neighborhood       *string    `db:"neighborhood"`
	City               *string    `db:"city"`
	ExpectedValueCents *int64     `db:"expected_value_cents"`
	Notes              *string    `db:"notes"`
	Status             string     `db:"status"`
	ImageURL           *string    `db:"image_url"`
	PropertyID         *uuid.UUID `db:"property_id"`
	CreatedByID        uuid.UUID  `db:"created_by_id"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// CreateListingParams contains data for creating a listing.
type CreateListingParams struct {
	Slug               string
	OwnerName          string
	OwnerPhone         *string
	OwnerEmail         *string
	Address            *string
	Neighborhood       *string
	City               *string
	ExpectedValueCents *int64
	Notes              *string
	Status             string
	CreatedByID        uuid.UUID
}

// ListListingsParams defines filters for listing listings.
type ListListingsParams struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// Repository defines persistence operations for listings.
type Repository interface {
	// CreateListing inserts a listing. A slug collision returns ErrSlugTaken
	// so the caller can regenerate and retry.
	CreateListing(ctx context.Context, params CreateListingParams) (Listing, error)
	GetListingByID(ctx context.Context, id uuid.UUID) (Listing, error)
	GetListingBySlug(ctx context.Context, slug string) (Listing, error)
	ListListings(ctx context.Context, params ListListingsParams) ([]Listing, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Listing, error)
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) (Listing, error)
	// PromoteListing atomically creates the catalog entry and marks the
	// listing captured. Fails with Conflict when the listing is already
	// terminal, re-checked under a row lock.
	PromoteListing(ctx context.Context, id uuid.UUID, draft ports.PropertyDraft) (Listing, uuid.UUID, error)
}
