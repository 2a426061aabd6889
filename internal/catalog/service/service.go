// Package service provides business logic for the property catalog.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"imobcrm_backend/internal/catalog/repository"
	"imobcrm_backend/internal/catalog/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
	"imobcrm_backend/platform/phone"
)

const (
	// StatusAvailable is the status every published property starts with.
	StatusAvailable = "available"

	defaultLimit = 20
	maxLimit     = 100
)

// Service provides catalog operations.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateProperty publishes a property directly into the portfolio.
func (s *Service) CreateProperty(ctx context.Context, req transport.CreatePropertyRequest) (transport.PropertyResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return transport.PropertyResponse{}, apperr.Validation("title is required")
	}
	if req.PriceCents <= 0 {
		return transport.PropertyResponse{}, apperr.Validation("price must be positive")
	}

	ownerPhone, err := phone.ParseE164(req.OwnerPhone)
	if err != nil {
		return transport.PropertyResponse{}, apperr.Validation("invalid owner phone number")
	}

	p, err := s.repo.CreateProperty(ctx, repository.CreatePropertyParams{
		Title:        title,
		Description:  req.Description,
		Type:         req.Type,
		Status:       StatusAvailable,
		PriceCents:   req.PriceCents,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		OwnerName:    strings.TrimSpace(req.OwnerName),
		OwnerPhone:   ownerPhone,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	return ToPropertyResponse(p), nil
}

// GetProperty retrieves a single property.
func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	p, err := s.repo.GetPropertyByID(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	return ToPropertyResponse(p), nil
}

// ListProperties lists properties newest first.
func (s *Service) ListProperties(ctx context.Context, params repository.ListPropertiesParams) (transport.PropertyListResponse, error) {
	if params.Limit <= 0 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	items, total, err := s.repo.ListProperties(ctx, params)
	if err != nil {
		return transport.PropertyListResponse{}, err
	}

	out := transport.PropertyListResponse{
		Items:  make([]transport.PropertyResponse, 0, len(items)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, p := range items {
		out.Items = append(out.Items, ToPropertyResponse(p))
	}
	return out, nil
}

// ToPropertyResponse maps a repository property to its API shape.
func ToPropertyResponse(p repository.Property) transport.PropertyResponse {
	return transport.PropertyResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Type:            p.Type,
		Status:          p.Status,
		PriceCents:      p.PriceCents,
		Address:         p.Address,
		Neighborhood:    p.Neighborhood,
		City:            p.City,
		OwnerName:       p.OwnerName,
		OwnerPhone:      p.OwnerPhone,
		ImageURL:        p.ImageURL,
		SourceListingID: p.SourceListingID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
