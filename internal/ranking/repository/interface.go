package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SalesAggregate is one broker's totals inside a ranking window. The agent
// reference is nullable for sales recorded against departed brokers.
type SalesAggregate struct {
	AgentID         *uuid.UUID `db:"agent_id"`
	AgentName       string     `db:"agent_name"`
	TotalCents      int64      `db:"total_cents"`
	AgentShareCents int64      `db:"agent_share_cents"`
	SalesCount      int        `db:"sales_count"`
}

// SaveSnapshotParams contains data for persisting a ranking snapshot.
type SaveSnapshotParams struct {
	WindowFrom  time.Time
	WindowTo    time.Time
	Payload     []byte
	GeneratedAt time.Time
}

// Repository defines persistence operations for the ranking aggregator.
type Repository interface {
	// AggregateSales groups closed sales over the half-open window [from, to),
	// ordered by total descending with the agent id as a stable tie-break.
	AggregateSales(ctx context.Context, from, to time.Time) ([]SalesAggregate, error)
	SaveSnapshot(ctx context.Context, params SaveSnapshotParams) error
}
