package adapters

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	catalogrepo "imobcrm_backend/internal/catalog/repository"
	listingsports "imobcrm_backend/internal/listings/ports"
)

// CatalogWriter adapts the catalog repository to the listings module's
// promotion port.
type CatalogWriter struct {
	repo catalogrepo.Repository
}

// NewCatalogWriter creates the adapter.
func NewCatalogWriter(repo catalogrepo.Repository) *CatalogWriter {
	return &CatalogWriter{repo: repo}
}

// CreatePropertyTx inserts the promoted property inside the listing's
// transaction and returns its ID.
func (w *CatalogWriter) CreatePropertyTx(ctx context.Context, tx pgx.Tx, draft listingsports.PropertyDraft) (uuid.UUID, error) {
	sourceID := draft.SourceListingID
	p, err := w.repo.CreatePropertyTx(ctx, tx, catalogrepo.CreatePropertyParams{
		Title:           draft.Title,
		Description:     draft.Description,
		Type:            draft.Type,
		Status:          draft.Status,
		PriceCents:      draft.PriceCents,
		Address:         draft.Address,
		Neighborhood:    draft.Neighborhood,
		City:            draft.City,
		OwnerName:       draft.OwnerName,
		OwnerPhone:      draft.OwnerPhone,
		ImageURL:        draft.ImageURL,
		SourceListingID: &sourceID,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

// Compile-time check.
var _ listingsports.CatalogWriter = (*CatalogWriter)(nil)
