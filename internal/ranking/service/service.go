// Package service provides business logic for the broker ranking aggregator.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"imobcrm_backend/internal/ranking/cache"
	"imobcrm_backend/internal/ranking/ports"
	"imobcrm_backend/internal/ranking/repository"
	"imobcrm_backend/internal/ranking/transport"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/logger"
)

// avatarFetchLimit bounds concurrent directory lookups during enrichment.
const avatarFetchLimit = 4

// Cache stores rendered rankings keyed by window. A nil Cache disables
// caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// Service computes broker rankings over closed sales.
type Service struct {
	repo   repository.Repository
	agents ports.AgentDirectory
	cache  Cache
	log    *logger.Logger
}

// New creates a new ranking service.
func New(repo repository.Repository, agents ports.AgentDirectory, c Cache, log *logger.Logger) *Service {
	return &Service{repo: repo, agents: agents, cache: c, log: log}
}

// GetRanking returns the broker ranking for the half-open window [from, to).
// Nil bounds default to the first of the current month and now. Cache and
// avatar failures degrade: the ranking is still served.
func (s *Service) GetRanking(ctx context.Context, from, to *time.Time) (transport.RankingResponse, error) {
	windowFrom, windowTo := resolveWindow(from, to)
	if !windowFrom.Before(windowTo) {
		return transport.RankingResponse{}, apperr.Validation("window start must precede window end")
	}

	key := cacheKey(windowFrom, windowTo)
	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, key); err == nil {
			var cached transport.RankingResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			s.log.Error("ranking cache read failed", "error", err)
		}
	}

	result, err := s.computeRanking(ctx, windowFrom, windowTo)
	if err != nil {
		return transport.RankingResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, payload); err != nil {
				s.log.Error("ranking cache write failed", "error", err)
			}
		}
	}

	return result, nil
}

// Snapshot computes the current-month ranking and persists it for
// historical reporting. Called by the scheduler.
func (s *Service) Snapshot(ctx context.Context) error {
	windowFrom, windowTo := resolveWindow(nil, nil)

	result, err := s.computeRanking(ctx, windowFrom, windowTo)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal ranking snapshot: %w", err)
	}

	return s.repo.SaveSnapshot(ctx, repository.SaveSnapshotParams{
		WindowFrom:  windowFrom,
		WindowTo:    windowTo,
		Payload:     payload,
		GeneratedAt: time.Now(),
	})
}

func (s *Service) computeRanking(ctx context.Context, from, to time.Time) (transport.RankingResponse, error) {
	aggregates, err := s.repo.AggregateSales(ctx, from, to)
	if err != nil {
		return transport.RankingResponse{}, err
	}

	entries := make([]transport.RankingEntry, len(aggregates))
	for i, agg := range aggregates {
		entries[i] = transport.RankingEntry{
			Position:        i + 1,
			AgentID:         agg.AgentID,
			AgentName:       agg.AgentName,
			TotalCents:      agg.TotalCents,
			AgentShareCents: agg.AgentShareCents,
			SalesCount:      agg.SalesCount,
		}
	}

	s.enrichAvatars(ctx, entries)

	return transport.RankingResponse{
		WindowFrom: from,
		WindowTo:   to,
		Entries:    entries,
	}, nil
}

// enrichAvatars fills avatar URLs from the directory. Lookups run with
// bounded concurrency; any failure leaves that entry's avatar unset.
func (s *Service) enrichAvatars(ctx context.Context, entries []transport.RankingEntry) {
	if s.agents == nil {
		return
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(avatarFetchLimit)

	for i := range entries {
		if entries[i].AgentID == nil {
			continue
		}
		idx := i
		agentID := *entries[i].AgentID
		g.Go(func() error {
			agent, err := s.agents.GetAgent(gctx, agentID)
			if err != nil {
				return nil
			}
			mu.Lock()
			entries[idx].AvatarURL = agent.AvatarURL
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
}

// resolveWindow applies the default window: first instant of the current
// month until now, both in UTC.
func resolveWindow(from, to *time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()

	windowTo := now
	if to != nil {
		windowTo = *to
	}

	windowFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if from != nil {
		windowFrom = *from
	}

	return windowFrom, windowTo
}

func cacheKey(from, to time.Time) string {
	return fmt.Sprintf("ranking:%s:%s",
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}
