// Package notification turns domain events into outbound messages for the
// agency's shared inbox.
package notification

import (
	"context"
	"fmt"

	"imobcrm_backend/internal/email"
	"imobcrm_backend/internal/events"
	"imobcrm_backend/platform/logger"
)

// Service listens to domain events and delivers notifications.
type Service struct {
	sender email.Sender
	log    *logger.Logger
	inbox  string
}

// New creates the notification service. With an empty inbox address nothing
// is delivered.
func New(sender email.Sender, log *logger.Logger, inboxAddress string) *Service {
	return &Service{sender: sender, log: log, inbox: inboxAddress}
}

// Register subscribes the service to the events it cares about.
func (s *Service) Register(bus events.Bus) {
	bus.Subscribe(events.LeadCaptured{}.EventName(), events.HandlerFunc(s.onLeadCaptured))
	bus.Subscribe(events.ListingPromoted{}.EventName(), events.HandlerFunc(s.onListingPromoted))
}

func (s *Service) onLeadCaptured(ctx context.Context, event events.Event) error {
	captured, ok := event.(events.LeadCaptured)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if s.inbox == "" {
		return nil
	}

	subject := fmt.Sprintf("Novo lead: %s", captured.Name)
	body := fmt.Sprintf(
		"<p>Novo lead capturado via <strong>%s</strong>.</p><p>Nome: %s<br>Telefone: %s</p>",
		captured.Source, captured.Name, captured.Phone,
	)
	if err := s.sender.Send(ctx, s.inbox, subject, body); err != nil {
		s.log.Error("lead notification failed", "lead_id", captured.LeadID, "error", err)
		return err
	}
	return nil
}

func (s *Service) onListingPromoted(ctx context.Context, event events.Event) error {
	promoted, ok := event.(events.ListingPromoted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if s.inbox == "" {
		return nil
	}

	subject := fmt.Sprintf("Captação concluída: %s", promoted.OwnerName)
	body := fmt.Sprintf(
		"<p>A captação de <strong>%s</strong> virou imóvel do portfólio.</p><p>Imóvel: %s</p>",
		promoted.OwnerName, promoted.PropertyID,
	)
	if err := s.sender.Send(ctx, s.inbox, subject, body); err != nil {
		s.log.Error("promotion notification failed", "listing_id", promoted.ListingID, "error", err)
		return err
	}
	return nil
}
