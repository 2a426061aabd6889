package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"imobcrm_backend/internal/events"
	"imobcrm_backend/internal/listings/domain"
	"imobcrm_backend/internal/listings/ports"
	"imobcrm_backend/internal/listings/repository"
	"imobcrm_backend/internal/listings/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
)

type fakeRepo struct {
	listings     map[uuid.UUID]repository.Listing
	bySlug       map[string]uuid.UUID
	failSlugs    int // first N creates fail with ErrSlugTaken
	createCalls  int
	promotedWith *ports.PropertyDraft
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		listings: make(map[uuid.UUID]repository.Listing),
		bySlug:   make(map[string]uuid.UUID),
	}
}

func (f *fakeRepo) CreateListing(_ context.Context, params repository.CreateListingParams) (repository.Listing, error) {
	f.createCalls++
	if f.failSlugs > 0 {
		f.failSlugs--
		return repository.Listing{}, repository.ErrSlugTaken
	}
	l := repository.Listing{
		ID:                 uuid.New(),
		Slug:               params.Slug,
		OwnerName:          params.OwnerName,
		OwnerPhone:         params.OwnerPhone,
		OwnerEmail:         params.OwnerEmail,
		Address:            params.Address,
		Neighborhood:       params.Neighborhood,
		City:               params.City,
		ExpectedValueCents: params.ExpectedValueCents,
		Notes:              params.Notes,
		Status:             params.Status,
		CreatedByID:        params.CreatedByID,
	}
	f.listings[l.ID] = l
	f.bySlug[l.Slug] = l.ID
	return l, nil
}

func (f *fakeRepo) GetListingByID(_ context.Context, id uuid.UUID) (repository.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return repository.Listing{}, apperr.NotFound("listing not found")
	}
	return l, nil
}

func (f *fakeRepo) GetListingBySlug(_ context.Context, slug string) (repository.Listing, error) {
	id, ok := f.bySlug[slug]
	if !ok {
		return repository.Listing{}, apperr.NotFound("listing not found")
	}
	return f.listings[id], nil
}

func (f *fakeRepo) ListListings(_ context.Context, _ repository.ListListingsParams) ([]repository.Listing, int, error) {
	out := make([]repository.Listing, 0, len(f.listings))
	for _, l := range f.listings {
		out = append(out, l)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (repository.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return repository.Listing{}, apperr.NotFound("listing not found")
	}
	if domain.IsTerminal(l.Status) {
		return repository.Listing{}, apperr.Conflict("listing already promoted to the catalog")
	}
	l.Status = status
	f.listings[id] = l
	return l, nil
}

func (f *fakeRepo) UpdateImageURL(_ context.Context, id uuid.UUID, imageURL string) (repository.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return repository.Listing{}, apperr.NotFound("listing not found")
	}
	l.ImageURL = &imageURL
	f.listings[id] = l
	return l, nil
}

func (f *fakeRepo) PromoteListing(_ context.Context, id uuid.UUID, draft ports.PropertyDraft) (repository.Listing, uuid.UUID, error) {
	l, ok := f.listings[id]
	if !ok {
		return repository.Listing{}, uuid.Nil, apperr.NotFound("listing not found")
	}
	if domain.IsTerminal(l.Status) {
		return repository.Listing{}, uuid.Nil, apperr.Conflict("listing already promoted to the catalog")
	}
	f.promotedWith = &draft
	propertyID := uuid.New()
	l.Status = domain.StatusCaptured
	l.PropertyID = &propertyID
	f.listings[id] = l
	return l, propertyID, nil
}

type fakeUploads struct {
	lastObject string
}

func (f *fakeUploads) GenerateUploadURL(_ context.Context, objectName, _ string) (string, error) {
	f.lastObject = objectName
	return "https://storage.local/upload/" + objectName, nil
}

func (f *fakeUploads) ObjectURL(objectName string) string {
	return "https://storage.local/" + objectName
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Subscribe(string, events.Handler) {}

func newTestService(repo *fakeRepo, bus *fakeBus) (*Service, *fakeUploads) {
	uploads := &fakeUploads{}
	return New(repo, uploads, bus, logger.New("test"), "https://imobcrm.com.br/"), uploads
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func validCreateRequest() transport.CreateListingRequest {
	return transport.CreateListingRequest{
		OwnerName:          "Carlos Pereira",
		OwnerPhone:         strPtr("11 98765-4321"),
		Address:            "Rua das Acácias, 120",
		ExpectedValueCents: int64Ptr(45000000),
	}
}

func TestCreateListing(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc, _ := newTestService(repo, bus)

	result, err := svc.CreateListing(context.Background(), validCreateRequest(), uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}

	if result.Status != domain.StatusNew {
		t.Errorf("expected status %q, got %q", domain.StatusNew, result.Status)
	}
	if len(result.Slug) != 8 {
		t.Errorf("expected 8-char slug, got %q", result.Slug)
	}
	if result.OwnerPhone == nil || *result.OwnerPhone != "+5511987654321" {
		t.Errorf("expected normalized phone, got %v", result.OwnerPhone)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	if _, ok := bus.published[0].(events.ListingCaptured); !ok {
		t.Fatalf("expected ListingCaptured, got %T", bus.published[0])
	}
}

func TestCreateListingMinimalFields(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakeBus{})

	result, err := svc.CreateListing(context.Background(), transport.CreateListingRequest{
		OwnerName: "João",
		Address:   "Rua A, 123",
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}

	if result.Status != domain.StatusNew {
		t.Errorf("expected status %q, got %q", domain.StatusNew, result.Status)
	}
	if len(result.Slug) != 8 {
		t.Errorf("expected 8-char slug, got %q", result.Slug)
	}
	for _, c := range result.Slug {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", c) {
			t.Errorf("slug %q contains non-alphanumeric %q", result.Slug, c)
		}
	}
	if result.OwnerPhone != nil {
		t.Errorf("expected no phone, got %v", *result.OwnerPhone)
	}
	if result.ExpectedValueCents != nil {
		t.Errorf("expected no expected value, got %v", *result.ExpectedValueCents)
	}
}

func TestCreateListingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*transport.CreateListingRequest)
	}{
		{"empty owner name", func(r *transport.CreateListingRequest) { r.OwnerName = " " }},
		{"empty address", func(r *transport.CreateListingRequest) { r.Address = "  " }},
		{"zero value", func(r *transport.CreateListingRequest) { r.ExpectedValueCents = int64Ptr(0) }},
		{"negative value", func(r *transport.CreateListingRequest) { r.ExpectedValueCents = int64Ptr(-100) }},
		{"bad phone", func(r *transport.CreateListingRequest) { r.OwnerPhone = strPtr("xx") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(newFakeRepo(), &fakeBus{})
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.CreateListing(context.Background(), req, uuid.New())
			if apperr.GetKind(err) != apperr.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateListingRetriesSlug(t *testing.T) {
	repo := newFakeRepo()
	repo.failSlugs = 2
	svc, _ := newTestService(repo, &fakeBus{})

	if _, err := svc.CreateListing(context.Background(), validCreateRequest(), uuid.New()); err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	if repo.createCalls != 3 {
		t.Errorf("expected 3 create attempts, got %d", repo.createCalls)
	}
}

func TestCreateListingSlugExhaustion(t *testing.T) {
	repo := newFakeRepo()
	repo.failSlugs = 10
	svc, _ := newTestService(repo, &fakeBus{})

	_, err := svc.CreateListing(context.Background(), validCreateRequest(), uuid.New())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if repo.createCalls != 5 {
		t.Errorf("expected 5 attempts, got %d", repo.createCalls)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc, _ := newTestService(repo, bus)

	created, err := svc.CreateListing(context.Background(), validCreateRequest(), uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	bus.published = nil

	t.Run("updates label and publishes", func(t *testing.T) {
		result, err := svc.UpdateStatus(context.Background(), created.ID, "Em negociação")
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		if result.Status != "Em negociação" {
			t.Errorf("got status %q", result.Status)
		}
		if len(bus.published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(bus.published))
		}
		changed, ok := bus.published[0].(events.ListingStatusChanged)
		if !ok {
			t.Fatalf("expected ListingStatusChanged, got %T", bus.published[0])
		}
		if changed.OldStatus != domain.StatusNew || changed.NewStatus != "Em negociação" {
			t.Errorf("event statuses wrong: %+v", changed)
		}
	})

	t.Run("same label is a no-op", func(t *testing.T) {
		bus.published = nil
		if _, err := svc.UpdateStatus(context.Background(), created.ID, "Em negociação"); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		if len(bus.published) != 0 {
			t.Errorf("expected no events, got %d", len(bus.published))
		}
	})

	t.Run("empty label rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), created.ID, "  ")
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("captured label reserved for promotion", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusCaptured)
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestPromoteToProperty(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc, _ := newTestService(repo, bus)

	created, err := svc.CreateListing(context.Background(), validCreateRequest(), uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	bus.published = nil

	result, err := svc.PromoteToProperty(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("PromoteToProperty failed: %v", err)
	}

	if result.Listing.Status != domain.StatusCaptured {
		t.Errorf("expected status %q, got %q", domain.StatusCaptured, result.Listing.Status)
	}
	if result.PropertyID == uuid.Nil {
		t.Error("expected property id")
	}

	draft := repo.promotedWith
	if draft == nil {
		t.Fatal("expected promotion draft")
	}
	if draft.Title != "Imóvel de Carlos Pereira" {
		t.Errorf("unexpected title %q", draft.Title)
	}
	if draft.Type != "Casa" {
		t.Errorf("unexpected type %q", draft.Type)
	}
	if draft.Status != "available" {
		t.Errorf("unexpected status %q", draft.Status)
	}
	if draft.PriceCents != 45000000 {
		t.Errorf("unexpected price %d", draft.PriceCents)
	}
	if draft.ImageURL == nil || *draft.ImageURL != "/images/property-placeholder.png" {
		t.Errorf("expected placeholder image, got %v", draft.ImageURL)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	if _, ok := bus.published[0].(events.ListingPromoted); !ok {
		t.Fatalf("expected ListingPromoted, got %T", bus.published[0])
	}

	t.Run("second promotion conflicts", func(t *testing.T) {
		_, err := svc.PromoteToProperty(context.Background(), created.ID)
		if apperr.GetKind(err) != apperr.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})
}

func TestPromoteUsesNotesAsDescription(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakeBus{})

	notes := "Casa com 3 quartos, quintal amplo."
	req := validCreateRequest()
	req.Notes = &notes

	created, err := svc.CreateListing(context.Background(), req, uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	if _, err := svc.PromoteToProperty(context.Background(), created.ID); err != nil {
		t.Fatalf("PromoteToProperty failed: %v", err)
	}

	if repo.promotedWith == nil || repo.promotedWith.Description != notes {
		t.Errorf("expected notes as description, got %+v", repo.promotedWith)
	}
}

func TestPromoteWithoutExpectedValue(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakeBus{})

	created, err := svc.CreateListing(context.Background(), transport.CreateListingRequest{
		OwnerName: "João",
		Address:   "Rua A, 123",
	}, uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	if _, err := svc.PromoteToProperty(context.Background(), created.ID); err != nil {
		t.Fatalf("PromoteToProperty failed: %v", err)
	}

	if repo.promotedWith == nil || repo.promotedWith.PriceCents != 0 {
		t.Errorf("expected zero price for missing expected value, got %+v", repo.promotedWith)
	}
}

func TestGenerateImageUploadURL(t *testing.T) {
	repo := newFakeRepo()
	svc, uploads := newTestService(repo, &fakeBus{})

	created, err := svc.CreateListing(context.Background(), validCreateRequest(), uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}

	result, err := svc.GenerateImageUploadURL(context.Background(), created.ID, "image/jpeg")
	if err != nil {
		t.Fatalf("GenerateImageUploadURL failed: %v", err)
	}

	if !strings.HasPrefix(uploads.lastObject, "listings/"+created.ID.String()+"/") {
		t.Errorf("unexpected object name %q", uploads.lastObject)
	}
	if !strings.HasSuffix(uploads.lastObject, ".jpg") {
		t.Errorf("expected .jpg extension, got %q", uploads.lastObject)
	}
	if result.UploadURL == "" || result.ImageURL == "" {
		t.Error("expected upload and image urls")
	}

	stored, err := svc.GetListing(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetListing failed: %v", err)
	}
	if stored.ImageURL == nil || *stored.ImageURL != result.ImageURL {
		t.Errorf("image url not persisted")
	}

	t.Run("rejects non-image content type", func(t *testing.T) {
		_, err := svc.GenerateImageUploadURL(context.Background(), created.ID, "application/pdf")
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestQRCodePNG(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakeBus{})

	created, err := svc.CreateListing(context.Background(), validCreateRequest(), uuid.New())
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}

	png, err := svc.QRCodePNG(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("QRCodePNG failed: %v", err)
	}
	if len(png) == 0 {
		t.Error("expected png bytes")
	}

	if _, err := svc.QRCodePNG(context.Background(), "missing"); apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
