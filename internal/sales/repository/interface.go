package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transaction is a closed sale. Amounts are stored as integer cents; the
// agent reference is nullable so sales survive agent removal.
type Transaction struct {
	ID              uuid.UUID  `db:"id"`
	PropertyID      *uuid.UUID `db:"property_id"`
	AgentID         *uuid.UUID `db:"agent_id"`
	AgentName       string     `db:"agent_name"`
	AmountCents     int64      `db:"amount_cents"`
	AgentShareCents int64      `db:"agent_share_cents"`
	ClosedAt        time.Time  `db:"closed_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

// CreateTransactionParams contains data for recording a closed sale.
type CreateTransactionParams struct {
	PropertyID      *uuid.UUID
	AgentID         *uuid.UUID
	AgentName       string
	AmountCents     int64
	AgentShareCents int64
	ClosedAt        time.Time
}

// ListTransactionsParams defines filters for listing transactions.
type ListTransactionsParams struct {
	AgentID *uuid.UUID
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// Repository defines persistence operations for sales transactions.
type Repository interface {
	CreateTransaction(ctx context.Context, params CreateTransactionParams) (Transaction, error)
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]Transaction, int, error)
}
