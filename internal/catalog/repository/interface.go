package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Property is a published entry in the agency's portfolio. Prices are stored
// as integer cents.
type Property struct {
	ID              uuid.UUID  `db:"id"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	Type            string     `db:"type"`
	Status          string     `db:"status"`
	PriceCents      int64      `db:"price_cents"`
	Address         *string    `db:"address"`
	Neighborhood    *string    `db:"neighborhood"`
	City            *string    `db:"city"`
	OwnerName       string     `db:"owner_name"`
	OwnerPhone      string     `db:"owner_phone"`
	ImageURL        *string    `db:"image_url"`
	SourceListingID *uuid.UUID `db:"source_listing_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// CreatePropertyParams contains data for creating a property.
type CreatePropertyParams struct {
	Title           string
	Description     string
	Type            string
	Status          string
	PriceCents      int64
	Address         *string
	Neighborhood    *string
	City            *string
	OwnerName       string
	OwnerPhone      string
	ImageURL        *string
	SourceListingID *uuid.UUID
}

// ListPropertiesParams defines filters for listing properties.
type ListPropertiesParams struct {
	Status string
	Type   string
	City   string
	Limit  int
	Offset int
}

// Repository defines persistence operations for the property catalog.
type Repository interface {
	CreateProperty(ctx context.Context, params CreatePropertyParams) (Property, error)
	// CreatePropertyTx inserts inside a caller-owned transaction, used by the
	// listing promotion path so the insert and the listing update commit together.
	CreatePropertyTx(ctx context.Context, tx pgx.Tx, params CreatePropertyParams) (Property, error)
	GetPropertyByID(ctx context.Context, id uuid.UUID) (Property, error)
	ListProperties(ctx context.Context, params ListPropertiesParams) ([]Property, int, error)
}
