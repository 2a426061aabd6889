package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, property_id, agent_id, agent_name,
	amount_cents, agent_share_cents, closed_at, created_at`

// Repo implements the sales repository backed by postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sales repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateTransaction records a closed sale.
func (r *Repo) CreateTransaction(ctx context.Context, params CreateTransactionParams) (Transaction, error) {
	query := `
		INSERT INTO transactions (property_id, agent_id, agent_name, amount_cents, agent_share_cents, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns

	var tx Transaction
	if err := r.pool.QueryRow(ctx, query,
		params.PropertyID, params.AgentID, params.AgentName,
		params.AmountCents, params.AgentShareCents, params.ClosedAt,
	).Scan(
		&tx.ID, &tx.PropertyID, &tx.AgentID, &tx.AgentName,
		&tx.AmountCents, &tx.AgentShareCents, &tx.ClosedAt, &tx.CreatedAt,
	); err != nil {
		return Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

// ListTransactions lists transactions most recently closed first.
func (r *Repo) ListTransactions(ctx context.Context, params ListTransactionsParams) ([]Transaction, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.AgentID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("agent_id = $%d", argIdx))
		args = append(args, *params.AgentID)
		argIdx++
	}
	if params.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("closed_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("closed_at < $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE %s
		ORDER BY closed_at DESC
		LIMIT $%d OFFSET $%d
	`, transactionColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	items := make([]Transaction, 0)
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(
			&tx.ID, &tx.PropertyID, &tx.AgentID, &tx.AgentName,
			&tx.AmountCents, &tx.AgentShareCents, &tx.ClosedAt, &tx.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		items = append(items, tx)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate transactions: %w", rows.Err())
	}

	return items, total, nil
}
