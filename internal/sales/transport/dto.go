// Package transport defines request/response DTOs for the sales module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateTransactionRequest is the payload for recording a closed sale.
type CreateTransactionRequest struct {
	PropertyID      *uuid.UUID `json:"propertyId,omitempty"`
	AgentID         *uuid.UUID `json:"agentId,omitempty"`
	AgentName       string     `json:"agentName" binding:"required"`
	AmountCents     int64      `json:"amountCents" binding:"required,gt=0"`
	AgentShareCents int64      `json:"agentShareCents" binding:"gte=0"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`
}

// TransactionResponse is the API representation of a closed sale.
type TransactionResponse struct {
	ID              uuid.UUID  `json:"id"`
	PropertyID      *uuid.UUID `json:"propertyId,omitempty"`
	AgentID         *uuid.UUID `json:"agentId,omitempty"`
	AgentName       string     `json:"agentName"`
	AmountCents     int64      `json:"amountCents"`
	AgentShareCents int64      `json:"agentShareCents"`
	ClosedAt        time.Time  `json:"closedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// TransactionListResponse is a paginated page of transactions.
type TransactionListResponse struct {
	Items  []TransactionResponse `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
