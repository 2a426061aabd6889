package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/internal/listings/domain"
	"imobcrm_backend/internal/listings/ports"
	"imobcrm_backend/platform/apperr"
)

const (
	listingNotFoundMessage        = "listing not found"
	listingAlreadyCapturedMessage = "listing already promoted to the catalog"

	uniqueViolationCode = "23505"
)

// ErrSlugTaken signals a slug collision on insert. Callers regenerate the
// slug and retry.
var ErrSlugTaken = errors.New("listing slug already taken")

const listingColumns = `id, slug, owner_name, owner_phone, owner_email,
	address, neighborhood, city, expected_value_cents, notes, status,
	image_url, property_id, created_by_id, created_at, updated_at`

// Repo implements the listings repository backed by postgres. Promotion
// drives the catalog writer inside its own transaction.
type Repo struct {
	pool    *pgxpool.Pool
	catalog ports.CatalogWriter
}

// New creates a new listings repository.
func New(pool *pgxpool.Pool, catalog ports.CatalogWriter) *Repo {
	return &Repo{pool: pool, catalog: catalog}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID, &l.Slug, &l.OwnerName, &l.OwnerPhone, &l.OwnerEmail,
		&l.Address, &l.Neighborhood, &l.City, &l.ExpectedValueCents, &l.Notes,
		&l.Status, &l.ImageURL, &l.PropertyID, &l.CreatedByID,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CreateListing inserts a new listing.
func (r *Repo) CreateListing(ctx context.Context, params CreateListingParams) (Listing, error) {
	query := `
		INSERT INTO listings (slug, owner_name, owner_phone, owner_email,
			address, neighborhood, city, expected_value_cents, notes, status, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + listingColumns

	l, err := scanListing(r.pool.QueryRow(ctx, query,
		params.Slug, params.OwnerName, params.OwnerPhone, params.OwnerEmail,
		params.Address, params.Neighborhood, params.City, params.ExpectedValueCents,
		params.Notes, params.Status, params.CreatedByID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return Listing{}, ErrSlugTaken
		}
		return Listing{}, fmt.Errorf("create listing: %w", err)
	}
	return l, nil
}

// GetListingByID retrieves a single listing.
func (r *Repo) GetListingByID(ctx context.Context, id uuid.UUID) (Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings WHERE id = $1", listingColumns)

	l, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, apperr.NotFound(listingNotFoundMessage)
		}
		return Listing{}, fmt.Errorf("get listing by id: %w", err)
	}
	return l, nil
}

// GetListingBySlug retrieves a listing by its public slug.
func (r *Repo) GetListingBySlug(ctx context.Context, slug string) (Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings WHERE slug = $1", listingColumns)

	l, err := scanListing(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, apperr.NotFound(listingNotFoundMessage)
		}
		return Listing{}, fmt.Errorf("get listing by slug: %w", err)
	}
	return l, nil
}

// ListListings lists listings newest first with optional filters.
func (r *Repo) ListListings(ctx context.Context, params ListListingsParams) ([]Listing, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(owner_name ILIKE $%d OR owner_phone ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM listings
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, listingColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	items := make([]Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan listing: %w", err)
		}
		items = append(items, l)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate listings: %w", rows.Err())
	}

	return items, total, nil
}

// UpdateStatus sets a new lifecycle label. Terminal listings are rejected at
// the database so concurrent promotions cannot be overwritten.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Listing, error) {
	query := fmt.Sprintf(`
		UPDATE listings SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> $3
		RETURNING %s`, listingColumns)

	l, err := scanListing(r.pool.QueryRow(ctx, query, id, status, domain.StatusCaptured))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetListingByID(ctx, id); getErr != nil {
				return Listing{}, getErr
			}
			return Listing{}, apperr.Conflict(listingAlreadyCapturedMessage)
		}
		return Listing{}, fmt.Errorf("update listing status: %w", err)
	}
	return l, nil
}

// UpdateImageURL records the uploaded cover image.
func (r *Repo) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) (Listing, error) {
	query := fmt.Sprintf(`
		UPDATE listings SET image_url = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, listingColumns)

	l, err := scanListing(r.pool.QueryRow(ctx, query, id, imageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, apperr.NotFound(listingNotFoundMessage)
		}
		return Listing{}, fmt.Errorf("update listing image: %w", err)
	}
	return l, nil
}

// PromoteListing creates the catalog entry and marks the listing captured in
// one transaction. The status is re-checked under a row lock.
func (r *Repo) PromoteListing(ctx context.Context, id uuid.UUID, draft ports.PropertyDraft) (Listing, uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Listing{}, uuid.Nil, fmt.Errorf("begin promote tx: %w", err)
	}
	defer tx.Rollback(ctx)

	lockQuery := fmt.Sprintf("SELECT %s FROM listings WHERE id = $1 FOR UPDATE", listingColumns)
	current, err := scanListing(tx.QueryRow(ctx, lockQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, uuid.Nil, apperr.NotFound(listingNotFoundMessage)
		}
		return Listing{}, uuid.Nil, fmt.Errorf("lock listing: %w", err)
	}
	if domain.IsTerminal(current.Status) {
		return Listing{}, uuid.Nil, apperr.Conflict(listingAlreadyCapturedMessage)
	}

	propertyID, err := r.catalog.CreatePropertyTx(ctx, tx, draft)
	if err != nil {
		return Listing{}, uuid.Nil, err
	}

	updateQuery := fmt.Sprintf(`
		UPDATE listings SET status = $2, property_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING %s`, listingColumns)

	updated, err := scanListing(tx.QueryRow(ctx, updateQuery, id, domain.StatusCaptured, propertyID))
	if err != nil {
		return Listing{}, uuid.Nil, fmt.Errorf("mark listing captured: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Listing{}, uuid.Nil, fmt.Errorf("commit promote tx: %w", err)
	}
	return updated, propertyID, nil
}
