// Package events provides domain event definitions for decoupled
// communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	platformevents "imobcrm_backend/platform/events"
	"imobcrm_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience.
type (
	Event       = platformevents.Event
	Bus         = platformevents.Bus
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	BaseEvent   = platformevents.BaseEvent
	InMemoryBus = platformevents.InMemoryBus
)

// NewBaseEvent re-exports the platform constructor.
var NewBaseEvent = platformevents.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCaptured is published when a new lead enters the funnel.
type LeadCaptured struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Email  string    `json:"email,omitempty"`
	Source string    `json:"source"`
}

func (e LeadCaptured) EventName() string { return "leads.lead.captured" }

// LeadStageMoved is published when a lead moves to another pipeline stage.
type LeadStageMoved struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	PipelineID uuid.UUID  `json:"pipelineId"`
	OldStageID *uuid.UUID `json:"oldStageId,omitempty"`
	NewStageID uuid.UUID  `json:"newStageId"`
	MovedByID  uuid.UUID  `json:"movedById"`
}

func (e LeadStageMoved) EventName() string { return "leads.stage.moved" }

// =============================================================================
// Listings Domain Events
// =============================================================================

// ListingCaptured is published when an agent records a new owner listing.
type ListingCaptured struct {
	BaseEvent
	ListingID uuid.UUID `json:"listingId"`
	Slug      string    `json:"slug"`
	OwnerName string    `json:"ownerName"`
	UserID    uuid.UUID `json:"userId"`
}

func (e ListingCaptured) EventName() string { return "listings.listing.captured" }

// ListingStatusChanged is published when a listing status label is updated.
type ListingStatusChanged struct {
	BaseEvent
	ListingID uuid.UUID `json:"listingId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e ListingStatusChanged) EventName() string { return "listings.status.changed" }

// ListingPromoted is published when a listing is promoted into the property
// catalog. Promotion is terminal for the listing.
type ListingPromoted struct {
	BaseEvent
	ListingID  uuid.UUID `json:"listingId"`
	PropertyID uuid.UUID `json:"propertyId"`
	OwnerName  string    `json:"ownerName"`
}

func (e ListingPromoted) EventName() string { return "listings.listing.promoted" }

// =============================================================================
// Sales Domain Events
// =============================================================================

// SaleClosed is published when a closed transaction is recorded.
type SaleClosed struct {
	BaseEvent
	TransactionID uuid.UUID  `json:"transactionId"`
	AgentID       *uuid.UUID `json:"agentId,omitempty"`
	AgentName     string     `json:"agentName"`
	AmountCents   int64      `json:"amountCents"`
}

func (e SaleClosed) EventName() string { return "sales.transaction.closed" }
