// Package service provides business logic for the listing lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"imobcrm_backend/internal/events"
	"imobcrm_backend/internal/listings/domain"
	"imobcrm_backend/internal/listings/ports"
	"imobcrm_backend/internal/listings/repository"
	"imobcrm_backend/internal/listings/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
	"imobcrm_backend/platform/phone"
	"imobcrm_backend/platform/slug"
)

const (
	// slugMaxAttempts bounds the regenerate-and-retry loop on slug collisions.
	slugMaxAttempts = 5

	// Promotion defaults applied when the listing carries no richer data.
	defaultPropertyType    = "Casa"
	propertyStatusDefault  = "available"
	placeholderImageURL    = "/images/property-placeholder.png"
	promotedDescription    = "Imóvel captado pela equipe de captação. Detalhes a confirmar com o proprietário."
	qrCodeSize             = 256
	captureSlugPathSegment = "captacao"

	defaultLimit = 20
	maxLimit     = 100
)

// Service provides listing lifecycle operations.
type Service struct {
	repo          repository.Repository
	uploads       ports.UploadURLProvider
	bus           events.Bus
	log           *logger.Logger
	publicSiteURL string
}

// New creates a new listings service.
func New(repo repository.Repository, uploads ports.UploadURLProvider, bus events.Bus, log *logger.Logger, publicSiteURL string) *Service {
	return &Service{
		repo:          repo,
		uploads:       uploads,
		bus:           bus,
		log:           log,
		publicSiteURL: strings.TrimRight(publicSiteURL, "/"),
	}
}

// CreateListing captures a new owner listing. The slug is regenerated on
// collision up to slugMaxAttempts times.
func (s *Service) CreateListing(ctx context.Context, req transport.CreateListingRequest, createdByID uuid.UUID) (transport.ListingResponse, error) {
	ownerName := strings.TrimSpace(req.OwnerName)
	if ownerName == "" {
		return transport.ListingResponse{}, apperr.Validation("owner name is required")
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return transport.ListingResponse{}, apperr.Validation("address is required")
	}
	if req.ExpectedValueCents != nil && *req.ExpectedValueCents <= 0 {
		return transport.ListingResponse{}, apperr.Validation("expected value must be positive")
	}

	ownerPhone := req.OwnerPhone
	if req.OwnerPhone != nil && strings.TrimSpace(*req.OwnerPhone) != "" {
		normalized, err := phone.ParseE164(*req.OwnerPhone)
		if err != nil {
			return transport.ListingResponse{}, apperr.Validation("invalid owner phone number")
		}
		ownerPhone = &normalized
	}

	var listing repository.Listing
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		code, err := slug.New()
		if err != nil {
			return transport.ListingResponse{}, apperr.Internal("could not generate listing slug")
		}

		listing, err = s.repo.CreateListing(ctx, repository.CreateListingParams{
			Slug:               code,
			OwnerName:          ownerName,
			OwnerPhone:         ownerPhone,
			OwnerEmail:         req.OwnerEmail,
			Address:            &address,
			Neighborhood:       req.Neighborhood,
			City:               req.City,
			ExpectedValueCents: req.ExpectedValueCents,
			Notes:              req.Notes,
			Status:             domain.StatusNew,
			CreatedByID:        createdByID,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrSlugTaken) {
			return transport.ListingResponse{}, err
		}
		if attempt == slugMaxAttempts-1 {
			return transport.ListingResponse{}, apperr.Internal("could not allocate a unique listing slug")
		}
	}

	s.bus.Publish(ctx, events.ListingCaptured{
		BaseEvent: events.NewBaseEvent(),
		ListingID: listing.ID,
		Slug:      listing.Slug,
		OwnerName: listing.OwnerName,
		UserID:    createdByID,
	})

	return toListingResponse(listing), nil
}

// GetListing retrieves a single listing.
func (s *Service) GetListing(ctx context.Context, id uuid.UUID) (transport.ListingResponse, error) {
	listing, err := s.repo.GetListingByID(ctx, id)
	if err != nil {
		return transport.ListingResponse{}, err
	}
	return toListingResponse(listing), nil
}

// ListListings lists listings newest first.
func (s *Service) ListListings(ctx context.Context, params repository.ListListingsParams) (transport.ListingListResponse, error) {
	if params.Limit <= 0 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	items, total, err := s.repo.ListListings(ctx, params)
	if err != nil {
		return transport.ListingListResponse{}, err
	}

	out := transport.ListingListResponse{
		Items:  make([]transport.ListingResponse, 0, len(items)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, l := range items {
		out.Items = append(out.Items, toListingResponse(l))
	}
	return out, nil
}

// UpdateStatus changes the lifecycle label. Updating to the current label is
// a no-op; terminal listings reject any change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (transport.ListingResponse, error) {
	newStatus = strings.TrimSpace(newStatus)
	if newStatus == "" {
		return transport.ListingResponse{}, apperr.Validation("status is required")
	}
	if newStatus == domain.StatusCaptured {
		return transport.ListingResponse{}, apperr.Validation("captured status is set by promotion only")
	}

	current, err := s.repo.GetListingByID(ctx, id)
	if err != nil {
		return transport.ListingResponse{}, err
	}
	if current.Status == newStatus {
		return toListingResponse(current), nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return transport.ListingResponse{}, err
	}

	s.bus.Publish(ctx, events.ListingStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		ListingID: updated.ID,
		OldStatus: current.Status,
		NewStatus: updated.Status,
	})

	return toListingResponse(updated), nil
}

// PromoteToProperty turns the listing into a catalog entry. The promotion is
// terminal: a captured listing cannot be promoted again.
func (s *Service) PromoteToProperty(ctx context.Context, id uuid.UUID) (transport.PromoteResponse, error) {
	listing, err := s.repo.GetListingByID(ctx, id)
	if err != nil {
		return transport.PromoteResponse{}, err
	}
	if domain.IsTerminal(listing.Status) {
		return transport.PromoteResponse{}, apperr.Conflict("listing already promoted to the catalog")
	}

	imageURL := placeholderImageURL
	if listing.ImageURL != nil && *listing.ImageURL != "" {
		imageURL = *listing.ImageURL
	}
	description := promotedDescription
	if listing.Notes != nil && strings.TrimSpace(*listing.Notes) != "" {
		description = *listing.Notes
	}
	var priceCents int64
	if listing.ExpectedValueCents != nil {
		priceCents = *listing.ExpectedValueCents
	}
	var ownerPhone string
	if listing.OwnerPhone != nil {
		ownerPhone = *listing.OwnerPhone
	}

	draft := ports.PropertyDraft{
		Title:           fmt.Sprintf("Imóvel de %s", listing.OwnerName),
		Description:     description,
		Type:            defaultPropertyType,
		Status:          propertyStatusDefault,
		PriceCents:      priceCents,
		Address:         listing.Address,
		Neighborhood:    listing.Neighborhood,
		City:            listing.City,
		OwnerName:       listing.OwnerName,
		OwnerPhone:      ownerPhone,
		ImageURL:        &imageURL,
		SourceListingID: listing.ID,
	}

	promoted, propertyID, err := s.repo.PromoteListing(ctx, id, draft)
	if err != nil {
		return transport.PromoteResponse{}, err
	}

	s.bus.Publish(ctx, events.ListingPromoted{
		BaseEvent:  events.NewBaseEvent(),
		ListingID:  promoted.ID,
		PropertyID: propertyID,
		OwnerName:  promoted.OwnerName,
	})

	return transport.PromoteResponse{
		Listing:    toListingResponse(promoted),
		PropertyID: propertyID,
	}, nil
}

// GenerateImageUploadURL issues a pre-signed PUT URL for the cover image and
// records the final object URL on the listing.
func (s *Service) GenerateImageUploadURL(ctx context.Context, id uuid.UUID, contentType string) (transport.ImageUploadResponse, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return transport.ImageUploadResponse{}, apperr.Validation("content type must be an image")
	}

	listing, err := s.repo.GetListingByID(ctx, id)
	if err != nil {
		return transport.ImageUploadResponse{}, err
	}

	objectName := fmt.Sprintf("listings/%s/%s%s", listing.ID, uuid.New(), extensionFor(contentType))
	uploadURL, err := s.uploads.GenerateUploadURL(ctx, objectName, contentType)
	if err != nil {
		return transport.ImageUploadResponse{}, apperr.Wrap(apperr.KindInternal, "could not generate upload url", err)
	}

	imageURL := s.uploads.ObjectURL(objectName)
	if _, err := s.repo.UpdateImageURL(ctx, id, imageURL); err != nil {
		return transport.ImageUploadResponse{}, err
	}

	return transport.ImageUploadResponse{UploadURL: uploadURL, ImageURL: imageURL}, nil
}

// QRCodePNG renders the listing's public capture page URL as a PNG QR code.
func (s *Service) QRCodePNG(ctx context.Context, slugValue string) ([]byte, error) {
	listing, err := s.repo.GetListingBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}

	target := fmt.Sprintf("%s/%s/%s", s.publicSiteURL, captureSlugPathSegment, listing.Slug)
	png, err := qrcode.Encode(target, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "could not render qr code", err)
	}
	return png, nil
}

func toListingResponse(l repository.Listing) transport.ListingResponse {
	return transport.ListingResponse{
		ID:                 l.ID,
		Slug:               l.Slug,
		OwnerName:          l.OwnerName,
		OwnerPhone:         l.OwnerPhone,
		OwnerEmail:         l.OwnerEmail,
		Address:            l.Address,
		Neighborhood:       l.Neighborhood,
		City:               l.City,
		ExpectedValueCents: l.ExpectedValueCents,
		Notes:              l.Notes,
		Status:             l.Status,
		ImageURL:           l.ImageURL,
		PropertyID:         l.PropertyID,
		CreatedByID:        l.CreatedByID,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
