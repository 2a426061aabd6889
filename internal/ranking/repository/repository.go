package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the ranking repository backed by postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ranking repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// aggregateSalesQuery groups closed sales per broker. The window is half-open
// ([from, to)); ties on the total break on agent id, unattributed sales last.
const aggregateSalesQuery = `
	SELECT agent_id, agent_name,
		SUM(amount_cents) AS total_cents,
		SUM(agent_share_cents) AS agent_share_cents,
		COUNT(*) AS sales_count
	FROM transactions
	WHERE closed_at >= $1 AND closed_at < $2
	GROUP BY agent_id, agent_name
	ORDER BY total_cents DESC, agent_id ASC NULLS LAST`

// AggregateSales groups closed sales per broker over [from, to).
func (r *Repo) AggregateSales(ctx context.Context, from, to time.Time) ([]SalesAggregate, error) {
	rows, err := r.pool.Query(ctx, aggregateSalesQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}
	defer rows.Close()

	items := make([]SalesAggregate, 0)
	for rows.Next() {
		var agg SalesAggregate
		if err := rows.Scan(
			&agg.AgentID, &agg.AgentName, &agg.TotalCents,
			&agg.AgentShareCents, &agg.SalesCount,
		); err != nil {
			return nil, fmt.Errorf("scan sales aggregate: %w", err)
		}
		items = append(items, agg)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate sales aggregates: %w", rows.Err())
	}
	return items, nil
}

// SaveSnapshot persists a rendered ranking for historical reporting.
func (r *Repo) SaveSnapshot(ctx context.Context, params SaveSnapshotParams) error {
	query := `
		INSERT INTO ranking_snapshots (window_from, window_to, payload, generated_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.pool.Exec(ctx, query,
		params.WindowFrom, params.WindowTo, params.Payload, params.GeneratedAt,
	); err != nil {
		return fmt.Errorf("save ranking snapshot: %w", err)
	}
	return nil
}
