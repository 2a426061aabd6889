package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imobcrm_backend/platform/apperr"
)

const propertyNotFoundMessage = "property not found"

const propertyColumns = `id, title, description, type, status, price_cents,
	address, neighborhood, city, owner_name, owner_phone, image_url,
	source_listing_id, created_at, updated_at`

// Repo implements the catalog repository backed by postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Type, &p.Status, &p.PriceCents,
		&p.Address, &p.Neighborhood, &p.City, &p.OwnerName, &p.OwnerPhone,
		&p.ImageURL, &p.SourceListingID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const insertPropertyQuery = `
	INSERT INTO properties (title, description, type, status, price_cents,
		address, neighborhood, city, owner_name, owner_phone, image_url, source_listing_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + propertyColumns

// CreateProperty inserts a property using the pool.
func (r *Repo) CreateProperty(ctx context.Context, params CreatePropertyParams) (Property, error) {
	row := r.pool.QueryRow(ctx, insertPropertyQuery,
		params.Title, params.Description, params.Type, params.Status, params.PriceCents,
		params.Address, params.Neighborhood, params.City, params.OwnerName,
		params.OwnerPhone, params.ImageURL, params.SourceListingID,
	)
	p, err := scanProperty(row)
	if err != nil {
		return Property{}, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

// CreatePropertyTx inserts a property inside the caller's transaction.
func (r *Repo) CreatePropertyTx(ctx context.Context, tx pgx.Tx, params CreatePropertyParams) (Property, error) {
	row := tx.QueryRow(ctx, insertPropertyQuery,
		params.Title, params.Description, params.Type, params.Status, params.PriceCents,
		params.Address, params.Neighborhood, params.City, params.OwnerName,
		params.OwnerPhone, params.ImageURL, params.SourceListingID,
	)
	p, err := scanProperty(row)
	if err != nil {
		return Property{}, fmt.Errorf("create property in tx: %w", err)
	}
	return p, nil
}

// GetPropertyByID retrieves a single property.
func (r *Repo) GetPropertyByID(ctx context.Context, id uuid.UUID) (Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("get property by id: %w", err)
	}
	return p, nil
}

// ListProperties lists properties newest first with optional filters.
func (r *Repo) ListProperties(ctx context.Context, params ListPropertiesParams) ([]Property, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Type != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, params.Type)
		argIdx++
	}
	if params.City != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("city ILIKE $%d", argIdx))
		args = append(args, params.City)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, propertyColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan property: %w", err)
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate properties: %w", rows.Err())
	}

	return items, total, nil
}
