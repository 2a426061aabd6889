// Package ports declares the interfaces the listings module needs from other
// bounded contexts. Adapters in internal/adapters satisfy them.
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PropertyDraft is the data handed to the catalog when a listing is promoted.
type PropertyDraft struct {
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
	SourceListingID uuid.UUID
}

// CatalogWriter creates catalog entries inside a caller-owned transaction so
// the property insert and the listing update commit atomically.
type CatalogWriter interface {
	CreatePropertyTx(ctx context.Context, tx pgx.Tx, draft PropertyDraft) (uuid.UUID, error)
}

// UploadURLProvider issues pre-signed upload URLs for listing images.
type UploadURLProvider interface {
	GenerateUploadURL(ctx context.Context, objectName, contentType string) (string, error)
	ObjectURL(objectName string) string
}
