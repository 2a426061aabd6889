package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"imobcrm_backend/internal/agents/repository"
	"imobcrm_backend/internal/agents/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
)

type fakeRepo struct {
	agents  map[uuid.UUID]repository.Agent
	created []repository.CreateAgentParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{agents: make(map[uuid.UUID]repository.Agent)}
}

func (f *fakeRepo) CreateAgent(_ context.Context, params repository.CreateAgentParams) (repository.Agent, error) {
	for _, a := range f.agents {
		if a.Email == params.Email {
			return repository.Agent{}, apperr.Conflict("an agent with this email already exists")
		}
	}
	f.created = append(f.created, params)
	agent := repository.Agent{
		ID:        uuid.New(),
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		AvatarURL: params.AvatarURL,
		Active:    true,
	}
	f.agents[agent.ID] = agent
	return agent, nil
}

func (f *fakeRepo) GetAgentByID(_ context.Context, id uuid.UUID) (repository.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return repository.Agent{}, apperr.NotFound("agent not found")
	}
	return agent, nil
}

func (f *fakeRepo) ListAgents(_ context.Context, activeOnly bool) ([]repository.Agent, error) {
	out := make([]repository.Agent, 0, len(f.agents))
	for _, a := range f.agents {
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func newTestService(repo repository.Repository) *Service {
	return New(repo, logger.New("test"))
}

func strPtr(s string) *string { return &s }

func TestCreateAgentNormalizes(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.CreateAgent(context.Background(), transport.CreateAgentRequest{
		Name:  "  Carla Mendes  ",
		Email: " Carla.Mendes@Imob.Example ",
		Phone: strPtr("11 98765-4321"),
	})
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}

	if resp.Name != "Carla Mendes" {
		t.Errorf("name = %q, want trimmed", resp.Name)
	}
	if resp.Email != "carla.mendes@imob.example" {
		t.Errorf("email = %q, want lowercased and trimmed", resp.Email)
	}
	if resp.Phone == nil || *resp.Phone != "+5511987654321" {
		t.Errorf("phone = %v, want +5511987654321", resp.Phone)
	}
	if !resp.Active {
		t.Error("new agent should be active")
	}
}

func TestCreateAgentEmptyName(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.CreateAgent(context.Background(), transport.CreateAgentRequest{
		Name:  "   ",
		Email: "x@imob.example",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want Validation", err)
	}
}

func TestCreateAgentDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	req := transport.CreateAgentRequest{Name: "Ana", Email: "ana@imob.example"}
	if _, err := svc.CreateAgent(context.Background(), req); err != nil {
		t.Fatalf("first CreateAgent: %v", err)
	}

	_, err := svc.CreateAgent(context.Background(), req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want Conflict", err)
	}
}

func TestListAgentsActiveOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	a, _ := svc.CreateAgent(context.Background(), transport.CreateAgentRequest{Name: "Ana", Email: "ana@imob.example"})
	svc.CreateAgent(context.Background(), transport.CreateAgentRequest{Name: "Bia", Email: "bia@imob.example"})

	inactive := repo.agents[a.ID]
	inactive.Active = false
	repo.agents[a.ID] = inactive

	agents, err := svc.ListAgents(context.Background(), true)
	if err != nil {
		t.Fatalf("ListAgents: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("got %d active agents, want 1", len(agents))
	}
	if agents[0].Name != "Bia" {
		t.Errorf("agent = %q, want Bia", agents[0].Name)
	}
}
