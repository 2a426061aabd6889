package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"imobcrm_backend/internal/events"
	"imobcrm_backend/internal/leads/ports"
	"imobcrm_backend/internal/leads/repository"
	"imobcrm_backend/internal/leads/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
)

type fakeRepo struct {
	leads   map[uuid.UUID]repository.Lead
	created []repository.CreateLeadParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (f *fakeRepo) CreateLead(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	f.created = append(f.created, params)
	lead := repository.Lead{
		ID:        uuid.New(),
		Name:      params.Name,
		Phone:     params.Phone,
		Email:     params.Email,
		Interest:  params.Interest,
		Source:    params.Source,
		Status:    params.Status,
		StageName: "Novo",
	}
	f.leads[lead.ID] = lead
	return lead, nil
}

func (f *fakeRepo) GetLeadByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (f *fakeRepo) UpdateLeadStage(_ context.Context, id uuid.UUID, stageID uuid.UUID) error {
	lead, ok := f.leads[id]
	if !ok {
		return apperr.NotFound("lead not found")
	}
	lead.StageID = &stageID
	f.leads[id] = lead
	return nil
}

func (f *fakeRepo) ListLeads(_ context.Context, _ repository.ListLeadsParams) ([]repository.Lead, int, error) {
	out := make([]repository.Lead, 0, len(f.leads))
	for _, lead := range f.leads {
		out = append(out, lead)
	}
	return out, len(out), nil
}

type fakeStages struct {
	stages map[uuid.UUID]ports.StageRef
}

func (f *fakeStages) GetStage(_ context.Context, id uuid.UUID) (ports.StageRef, error) {
	stage, ok := f.stages[id]
	if !ok {
		return ports.StageRef{}, apperr.NotFound("stage not found")
	}
	return stage, nil
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Subscribe(string, events.Handler) {}

func newTestService(repo *fakeRepo, stages *fakeStages, bus *fakeBus) *Service {
	if stages == nil {
		stages = &fakeStages{stages: map[uuid.UUID]ports.StageRef{}}
	}
	return New(repo, stages, bus, logger.New("test"))
}

func TestCreateLeadDefaults(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, nil, bus)

	result, err := svc.CreateLead(context.Background(), transport.CreateLeadRequest{
		Name:  "Maria Souza",
		Phone: "11 98765-4321",
	})
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	if result.Source != SourceManual {
		t.Errorf("expected source %q, got %q", SourceManual, result.Source)
	}
	if result.Status != "Novo" {
		t.Errorf("expected status Novo, got %q", result.Status)
	}
	if result.StageID != nil {
		t.Errorf("expected stage unset, got %v", result.StageID)
	}
	if result.StageName != "Novo" {
		t.Errorf("expected stage name Novo, got %q", result.StageName)
	}
	if result.Phone != "+5511987654321" {
		t.Errorf("expected normalized phone, got %q", result.Phone)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	captured, ok := bus.published[0].(events.LeadCaptured)
	if !ok {
		t.Fatalf("expected LeadCaptured event, got %T", bus.published[0])
	}
	if captured.LeadID != result.ID {
		t.Errorf("event lead id mismatch")
	}
}

func TestCreateLeadValidation(t *testing.T) {
	tests := []struct {
		name string
		req  transport.CreateLeadRequest
	}{
		{"empty name", transport.CreateLeadRequest{Phone: "11987654321"}},
		{"empty phone", transport.CreateLeadRequest{Name: "Maria"}},
		{"blank name", transport.CreateLeadRequest{Name: "   ", Phone: "11987654321"}},
		{"bad phone", transport.CreateLeadRequest{Name: "Maria", Phone: "abc"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(newFakeRepo(), nil, &fakeBus{})
			_, err := svc.CreateLead(context.Background(), tc.req)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if apperr.GetKind(err) != apperr.KindValidation {
				t.Errorf("expected validation kind, got %v", apperr.GetKind(err))
			}
		})
	}
}

func TestCaptureIntakeLeadSource(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil, &fakeBus{})

	result, err := svc.CaptureIntakeLead(context.Background(), transport.IntakeLeadRequest{
		Name:  "João Lima",
		Phone: "+5511912345678",
	})
	if err != nil {
		t.Fatalf("CaptureIntakeLead failed: %v", err)
	}
	if result.Source != SourceWhatsAppBot {
		t.Errorf("expected source %q, got %q", SourceWhatsAppBot, result.Source)
	}
}

func TestMoveLead(t *testing.T) {
	pipelineID := uuid.New()
	stageA := ports.StageRef{ID: uuid.New(), PipelineID: pipelineID, Name: "Contato", Position: 1}
	stageB := ports.StageRef{ID: uuid.New(), PipelineID: pipelineID, Name: "Visita", Position: 2}
	otherStage := ports.StageRef{ID: uuid.New(), PipelineID: uuid.New(), Name: "Proposta", Position: 1}

	stages := &fakeStages{stages: map[uuid.UUID]ports.StageRef{
		stageA.ID:     stageA,
		stageB.ID:     stageB,
		otherStage.ID: otherStage,
	}}

	setup := func(t *testing.T) (*Service, *fakeRepo, *fakeBus, uuid.UUID) {
		t.Helper()
		repo := newFakeRepo()
		bus := &fakeBus{}
		svc := newTestService(repo, stages, bus)
		created, err := svc.CreateLead(context.Background(), transport.CreateLeadRequest{
			Name:  "Maria",
			Phone: "11987654321",
		})
		if err != nil {
			t.Fatalf("CreateLead failed: %v", err)
		}
		bus.published = nil
		return svc, repo, bus, created.ID
	}

	t.Run("moves unstaged lead onto a stage", func(t *testing.T) {
		svc, repo, bus, leadID := setup(t)

		result, err := svc.MoveLead(context.Background(), leadID, stageA.ID, uuid.New())
		if err != nil {
			t.Fatalf("MoveLead failed: %v", err)
		}
		if result.StageID == nil || *result.StageID != stageA.ID {
			t.Errorf("expected stage %v, got %v", stageA.ID, result.StageID)
		}
		if got := repo.leads[leadID].StageID; got == nil || *got != stageA.ID {
			t.Errorf("repository not updated")
		}
		if len(bus.published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(bus.published))
		}
		moved, ok := bus.published[0].(events.LeadStageMoved)
		if !ok {
			t.Fatalf("expected LeadStageMoved, got %T", bus.published[0])
		}
		if moved.OldStageID != nil {
			t.Errorf("expected nil old stage, got %v", moved.OldStageID)
		}
		if moved.NewStageID != stageA.ID {
			t.Errorf("event new stage mismatch")
		}
	})

	t.Run("same stage is a no-op", func(t *testing.T) {
		svc, _, bus, leadID := setup(t)

		if _, err := svc.MoveLead(context.Background(), leadID, stageA.ID, uuid.New()); err != nil {
			t.Fatalf("first move failed: %v", err)
		}
		bus.published = nil

		if _, err := svc.MoveLead(context.Background(), leadID, stageA.ID, uuid.New()); err != nil {
			t.Fatalf("second move failed: %v", err)
		}
		if len(bus.published) != 0 {
			t.Errorf("expected no events on no-op move, got %d", len(bus.published))
		}
	})

	t.Run("rejects stage from another pipeline", func(t *testing.T) {
		svc, _, _, leadID := setup(t)

		if _, err := svc.MoveLead(context.Background(), leadID, stageA.ID, uuid.New()); err != nil {
			t.Fatalf("first move failed: %v", err)
		}

		_, err := svc.MoveLead(context.Background(), leadID, otherStage.ID, uuid.New())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Errorf("expected validation kind, got %v", apperr.GetKind(err))
		}
	})

	t.Run("unknown lead", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		_, err := svc.MoveLead(context.Background(), uuid.New(), stageA.ID, uuid.New())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if apperr.GetKind(err) != apperr.KindNotFound {
			t.Errorf("expected not found kind, got %v", apperr.GetKind(err))
		}
	})

	t.Run("unknown stage", func(t *testing.T) {
		svc, _, _, leadID := setup(t)

		_, err := svc.MoveLead(context.Background(), leadID, uuid.New(), uuid.New())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if apperr.GetKind(err) != apperr.KindNotFound {
			t.Errorf("expected not found kind, got %v", apperr.GetKind(err))
		}
	})
}
