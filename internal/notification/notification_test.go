package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"imobcrm_backend/internal/events"
	"imobcrm_backend/platform/logger"
)

type fakeSender struct {
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func TestLeadCapturedNotification(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, logger.New("test"), "captacao@imobcrm.com.br")
	bus := events.NewInMemoryBus(logger.New("test"))
	svc.Register(bus)

	err := bus.PublishSync(context.Background(), events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		Name:      "Maria Souza",
		Phone:     "+5511987654321",
		Source:    "Bot WhatsApp",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(sender.sent))
	}
	mail := sender.sent[0]
	if mail.to != "captacao@imobcrm.com.br" {
		t.Errorf("unexpected recipient %q", mail.to)
	}
	if !strings.Contains(mail.subject, "Maria Souza") {
		t.Errorf("subject missing lead name: %q", mail.subject)
	}
	if !strings.Contains(mail.body, "Bot WhatsApp") {
		t.Errorf("body missing source: %q", mail.body)
	}
}

func TestListingPromotedNotification(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, logger.New("test"), "captacao@imobcrm.com.br")
	bus := events.NewInMemoryBus(logger.New("test"))
	svc.Register(bus)

	err := bus.PublishSync(context.Background(), events.ListingPromoted{
		BaseEvent:  events.NewBaseEvent(),
		ListingID:  uuid.New(),
		PropertyID: uuid.New(),
		OwnerName:  "Carlos Pereira",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].subject, "Carlos Pereira") {
		t.Errorf("subject missing owner name: %q", sender.sent[0].subject)
	}
}

func TestNoInboxConfigured(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, logger.New("test"), "")
	bus := events.NewInMemoryBus(logger.New("test"))
	svc.Register(bus)

	err := bus.PublishSync(context.Background(), events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		Name:      "Maria",
		Phone:     "+5511987654321",
		Source:    "Manual",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no mail, got %d", len(sender.sent))
	}
}
