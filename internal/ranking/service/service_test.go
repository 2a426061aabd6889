package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"imobcrm_backend/internal/ranking/cache"
	"imobcrm_backend/internal/ranking/ports"
	"imobcrm_backend/internal/ranking/repository"
	"imobcrm_backend/internal/ranking/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
)

type fakeRepo struct {
	aggregates     []repository.SalesAggregate
	aggregateCalls int
	snapshots      []repository.SaveSnapshotParams
}

func (f *fakeRepo) AggregateSales(_ context.Context, _, _ time.Time) ([]repository.SalesAggregate, error) {
	f.aggregateCalls++
	return f.aggregates, nil
}

func (f *fakeRepo) SaveSnapshot(_ context.Context, params repository.SaveSnapshotParams) error {
	f.snapshots = append(f.snapshots, params)
	return nil
}

type fakeAgents struct {
	agents map[uuid.UUID]ports.AgentRef
}

func (f *fakeAgents) GetAgent(_ context.Context, id uuid.UUID) (ports.AgentRef, error) {
	agent, ok := f.agents[id]
	if !ok {
		return ports.AgentRef{}, apperr.NotFound("agent not found")
	}
	return agent, nil
}

type memoryCache struct {
	data    map[string][]byte
	failing bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.failing {
		return nil, errors.New("redis down")
	}
	val, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return val, nil
}

func (m *memoryCache) Set(_ context.Context, key string, payload []byte) error {
	if m.failing {
		return errors.New("redis down")
	}
	m.data[key] = payload
	return nil
}

func window(t *testing.T) (*time.Time, *time.Time) {
	t.Helper()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return &from, &to
}

func TestGetRankingOrdersAndEnriches(t *testing.T) {
	topAgent := uuid.New()
	avatar := "https://storage.local/avatars/ana.jpg"
	repo := &fakeRepo{aggregates: []repository.SalesAggregate{
		{AgentID: &topAgent, AgentName: "Ana Costa", TotalCents: 90000000, AgentShareCents: 5400000, SalesCount: 3},
		{AgentID: nil, AgentName: "Corretor Externo", TotalCents: 30000000, AgentShareCents: 0, SalesCount: 1},
	}}
	agents := &fakeAgents{agents: map[uuid.UUID]ports.AgentRef{
		topAgent: {ID: topAgent, Name: "Ana Costa", AvatarURL: &avatar},
	}}
	svc := New(repo, agents, nil, logger.New("test"))

	from, to := window(t)
	result, err := svc.GetRanking(context.Background(), from, to)
	if err != nil {
		t.Fatalf("GetRanking failed: %v", err)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Position != 1 || result.Entries[1].Position != 2 {
		t.Errorf("positions not sequential: %+v", result.Entries)
	}
	if result.Entries[0].AvatarURL == nil || *result.Entries[0].AvatarURL != avatar {
		t.Errorf("expected avatar enrichment, got %v", result.Entries[0].AvatarURL)
	}
	if result.Entries[1].AvatarURL != nil {
		t.Errorf("expected no avatar for unlinked sale, got %v", result.Entries[1].AvatarURL)
	}
}

func TestGetRankingUnknownAgentDegrades(t *testing.T) {
	agentID := uuid.New()
	repo := &fakeRepo{aggregates: []repository.SalesAggregate{
		{AgentID: &agentID, AgentName: "Removido", TotalCents: 100, SalesCount: 1},
	}}
	svc := New(repo, &fakeAgents{agents: map[uuid.UUID]ports.AgentRef{}}, nil, logger.New("test"))

	from, to := window(t)
	result, err := svc.GetRanking(context.Background(), from, to)
	if err != nil {
		t.Fatalf("GetRanking failed: %v", err)
	}
	if result.Entries[0].AvatarURL != nil {
		t.Errorf("expected nil avatar, got %v", result.Entries[0].AvatarURL)
	}
}

func TestGetRankingWindowValidation(t *testing.T) {
	svc := New(&fakeRepo{}, nil, nil, logger.New("test"))

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetRanking(context.Background(), &from, &to)
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetRankingUsesCache(t *testing.T) {
	repo := &fakeRepo{aggregates: []repository.SalesAggregate{
		{AgentName: "Ana", TotalCents: 100, SalesCount: 1},
	}}
	c := newMemoryCache()
	svc := New(repo, nil, c, logger.New("test"))

	from, to := window(t)
	if _, err := svc.GetRanking(context.Background(), from, to); err != nil {
		t.Fatalf("first GetRanking failed: %v", err)
	}
	if _, err := svc.GetRanking(context.Background(), from, to); err != nil {
		t.Fatalf("second GetRanking failed: %v", err)
	}

	if repo.aggregateCalls != 1 {
		t.Errorf("expected 1 aggregate query, got %d", repo.aggregateCalls)
	}
}

func TestGetRankingCacheFailureDegrades(t *testing.T) {
	repo := &fakeRepo{aggregates: []repository.SalesAggregate{
		{AgentName: "Ana", TotalCents: 100, SalesCount: 1},
	}}
	c := newMemoryCache()
	c.failing = true
	svc := New(repo, nil, c, logger.New("test"))

	from, to := window(t)
	result, err := svc.GetRanking(context.Background(), from, to)
	if err != nil {
		t.Fatalf("GetRanking failed: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Errorf("expected ranking despite cache failure, got %+v", result)
	}
}

func TestGetRankingDefaultWindow(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, nil, logger.New("test"))

	result, err := svc.GetRanking(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("GetRanking failed: %v", err)
	}

	now := time.Now().UTC()
	wantFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if !result.WindowFrom.Equal(wantFrom) {
		t.Errorf("expected window from %v, got %v", wantFrom, result.WindowFrom)
	}
	if result.WindowFrom.Location() != time.UTC {
		t.Errorf("expected UTC window start, got %v", result.WindowFrom.Location())
	}
	if result.WindowTo.Before(wantFrom) || result.WindowTo.After(now.Add(time.Minute)) {
		t.Errorf("unexpected window to %v", result.WindowTo)
	}
}

func TestSnapshot(t *testing.T) {
	agentID := uuid.New()
	repo := &fakeRepo{aggregates: []repository.SalesAggregate{
		{AgentID: &agentID, AgentName: "Ana", TotalCents: 500, AgentShareCents: 50, SalesCount: 2},
	}}
	svc := New(repo, nil, nil, logger.New("test"))

	if err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if len(repo.snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(repo.snapshots))
	}
	var stored transport.RankingResponse
	if err := json.Unmarshal(repo.snapshots[0].Payload, &stored); err != nil {
		t.Fatalf("snapshot payload not valid json: %v", err)
	}
	if len(stored.Entries) != 1 || stored.Entries[0].AgentName != "Ana" {
		t.Errorf("unexpected snapshot payload: %+v", stored)
	}
}
