// Package service provides business logic for recording closed sales.
package service

import (
	"context"
	"strings"
	"time"

	"imobcrm_backend/internal/events"
	"imobcrm_backend/internal/sales/repository"
	"imobcrm_backend/internal/sales/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service provides sales operations.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new sales service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateTransaction records a closed sale. The agent share may not exceed
// the sale amount; a missing close time defaults to now.
func (s *Service) CreateTransaction(ctx context.Context, req transport.CreateTransactionRequest) (transport.TransactionResponse, error) {
	agentName := strings.TrimSpace(req.AgentName)
	if agentName == "" {
		return transport.TransactionResponse{}, apperr.Validation("agent name is required")
	}
	if req.AmountCents <= 0 {
		return transport.TransactionResponse{}, apperr.Validation("amount must be positive")
	}
	if req.AgentShareCents < 0 {
		return transport.TransactionResponse{}, apperr.Validation("agent share cannot be negative")
	}
	if req.AgentShareCents > req.AmountCents {
		return transport.TransactionResponse{}, apperr.Validation("agent share cannot exceed the sale amount")
	}

	closedAt := time.Now()
	if req.ClosedAt != nil {
		closedAt = *req.ClosedAt
	}

	tx, err := s.repo.CreateTransaction(ctx, repository.CreateTransactionParams{
		PropertyID:      req.PropertyID,
		AgentID:         req.AgentID,
		AgentName:       agentName,
		AmountCents:     req.AmountCents,
		AgentShareCents: req.AgentShareCents,
		ClosedAt:        closedAt,
	})
	if err != nil {
		return transport.TransactionResponse{}, err
	}

	s.bus.Publish(ctx, events.SaleClosed{
		BaseEvent:     events.NewBaseEvent(),
		TransactionID: tx.ID,
		AgentID:       tx.AgentID,
		AgentName:     tx.AgentName,
		AmountCents:   tx.AmountCents,
	})

	return toTransactionResponse(tx), nil
}

// ListTransactions lists closed sales most recent first.
func (s *Service) ListTransactions(ctx context.Context, params repository.ListTransactionsParams) (transport.TransactionListResponse, error) {
	if params.Limit <= 0 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	items, total, err := s.repo.ListTransactions(ctx, params)
	if err != nil {
		return transport.TransactionListResponse{}, err
	}

	out := transport.TransactionListResponse{
		Items:  make([]transport.TransactionResponse, 0, len(items)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, tx := range items {
		out.Items = append(out.Items, toTransactionResponse(tx))
	}
	return out, nil
}

func toTransactionResponse(tx repository.Transaction) transport.TransactionResponse {
	return transport.TransactionResponse{
		ID:              tx.ID,
		PropertyID:      tx.PropertyID,
		AgentID:         tx.AgentID,
		AgentName:       tx.AgentName,
		AmountCents:     tx.AmountCents,
		AgentShareCents: tx.AgentShareCents,
		ClosedAt:        tx.ClosedAt,
		CreatedAt:       tx.CreatedAt,
	}
}
