package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"imobcrm_backend/internal/funnel/repository"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
)

type fakeRepo struct {
	pipelines map[uuid.UUID]repository.Pipeline
	stages    map[uuid.UUID][]repository.Stage
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		pipelines: make(map[uuid.UUID]repository.Pipeline),
		stages:    make(map[uuid.UUID][]repository.Stage),
	}
}

func (f *fakeRepo) GetPipeline(_ context.Context, id uuid.UUID) (repository.Pipeline, error) {
	p, ok := f.pipelines[id]
	if !ok {
		return repository.Pipeline{}, apperr.NotFound("pipeline not found")
	}
	return p, nil
}

func (f *fakeRepo) GetPipelineByName(_ context.Context, name string) (repository.Pipeline, error) {
	for _, p := range f.pipelines {
		if p.Name == name {
			return p, nil
		}
	}
	return repository.Pipeline{}, apperr.NotFound("pipeline not found")
}

func (f *fakeRepo) ListPipelines(_ context.Context) ([]repository.Pipeline, error) {
	out := make([]repository.Pipeline, 0, len(f.pipelines))
	for _, p := range f.pipelines {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) ListStages(_ context.Context, pipelineID uuid.UUID) ([]repository.Stage, error) {
	return f.stages[pipelineID], nil
}

func (f *fakeRepo) GetStage(_ context.Context, id uuid.UUID) (repository.Stage, error) {
	for _, stages := range f.stages {
		for _, s := range stages {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return repository.Stage{}, apperr.NotFound("stage not found")
}

func (f *fakeRepo) CreatePipeline(_ context.Context, name string) (repository.Pipeline, error) {
	p := repository.Pipeline{ID: uuid.New(), Name: name}
	f.pipelines[p.ID] = p
	return p, nil
}

func (f *fakeRepo) CreateStage(_ context.Context, params repository.CreateStageParams) (repository.Stage, error) {
	s := repository.Stage{
		ID:         uuid.New(),
		PipelineID: params.PipelineID,
		Name:       params.Name,
		Position:   params.Position,
	}
	f.stages[params.PipelineID] = append(f.stages[params.PipelineID], s)
	return s, nil
}

func newTestService(repo repository.Repository) *Service {
	return New(repo, logger.New("test"))
}

func TestGetStagesReturnsOrderedStages(t *testing.T) {
	repo := newFakeRepo()
	pipeline, _ := repo.CreatePipeline(context.Background(), "Vendas")
	for i, name := range []string{"Contato Feito", "Visita Agendada", "Fechado"} {
		if _, err := repo.CreateStage(context.Background(), repository.CreateStageParams{
			PipelineID: pipeline.ID,
			Name:       name,
			Position:   i + 1,
		}); err != nil {
			t.Fatalf("CreateStage: %v", err)
		}
	}

	svc := newTestService(repo)
	resp, err := svc.GetStages(context.Background(), pipeline.ID)
	if err != nil {
		t.Fatalf("GetStages: %v", err)
	}

	if resp.Pipeline.Name != "Vendas" {
		t.Errorf("pipeline name = %q, want Vendas", resp.Pipeline.Name)
	}
	if len(resp.Stages) != 3 {
		t.Fatalf("got %d stages, want 3", len(resp.Stages))
	}
	if resp.Stages[0].Name != "Contato Feito" || resp.Stages[0].Position != 1 {
		t.Errorf("first stage = %q at %d, want Contato Feito at 1", resp.Stages[0].Name, resp.Stages[0].Position)
	}
}

func TestGetStagesEmptyPipeline(t *testing.T) {
	repo := newFakeRepo()
	pipeline, _ := repo.CreatePipeline(context.Background(), "Locação")

	svc := newTestService(repo)
	resp, err := svc.GetStages(context.Background(), pipeline.ID)
	if err != nil {
		t.Fatalf("GetStages: %v", err)
	}
	if resp.Stages == nil {
		t.Error("stages is nil, want empty slice")
	}
	if len(resp.Stages) != 0 {
		t.Errorf("got %d stages, want 0", len(resp.Stages))
	}
}

func TestGetStagesUnknownPipeline(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetStages(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestListPipelines(t *testing.T) {
	repo := newFakeRepo()
	repo.CreatePipeline(context.Background(), "Vendas")
	repo.CreatePipeline(context.Background(), "Locação")

	svc := newTestService(repo)
	pipelines, err := svc.ListPipelines(context.Background())
	if err != nil {
		t.Fatalf("ListPipelines: %v", err)
	}
	if len(pipelines) != 2 {
		t.Fatalf("got %d pipelines, want 2", len(pipelines))
	}
}
