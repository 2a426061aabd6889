package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return New(client, ttl), srv
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, err := c.Get(ctx, "ranking:missing"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}

	payload := []byte(`{"entries":[]}`)
	if err := c.Set(ctx, "ranking:a", payload); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "ranking:a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, srv := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "ranking:b", []byte("x")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	srv.FastForward(2 * time.Minute)

	if _, err := c.Get(ctx, "ranking:b"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss after TTL, got %v", err)
	}
}
