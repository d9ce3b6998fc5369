package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisCooldownCache) {
	t.Helper()

	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, NewRedisCooldownCache(rdb, ttl)
}

func TestRedisCooldownCache_MarkThenCheck(t *testing.T) {
	t.Parallel()

	mr, c := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	sent, err := c.WasRecentlySent(ctx, "user-1", "req-1")
	if err != nil {
		t.Fatalf("WasRecentlySent() error: %v", err)
	}
	if sent {
		t.Fatalf("expected miss before MarkSent")
	}

	if err := c.MarkSent(ctx, "user-1", "req-1"); err != nil {
		t.Fatalf("MarkSent() error: %v", err)
	}

	sent, err = c.WasRecentlySent(ctx, "user-1", "req-1")
	if err != nil {
		t.Fatalf("WasRecentlySent() error: %v", err)
	}
	if !sent {
		t.Fatalf("expected hit after MarkSent")
	}

	if ttl := mr.TTL("reminder:user-1:req-1"); ttl <= 0 {
		t.Fatalf("expected TTL to be set, got %v", ttl)
	}
}

func TestRedisCooldownCache_PairsAreIndependent(t *testing.T) {
	t.Parallel()

	_, c := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.MarkSent(ctx, "user-1", "req-1"); err != nil {
		t.Fatalf("MarkSent() error: %v", err)
	}

	for _, pair := range [][2]string{
		{"user-1", "req-2"},
		{"user-2", "req-1"},
	} {
		sent, err := c.WasRecentlySent(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("WasRecentlySent(%s, %s) error: %v", pair[0], pair[1], err)
		}
		if sent {
			t.Fatalf("expected miss for unrelated pair (%s, %s)", pair[0], pair[1])
		}
	}
}

func TestRedisCooldownCache_EntryExpires(t *testing.T) {
	t.Parallel()

	mr, c := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.MarkSent(ctx, "user-1", "req-1"); err != nil {
		t.Fatalf("MarkSent() error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	sent, err := c.WasRecentlySent(ctx, "user-1", "req-1")
	if err != nil {
		t.Fatalf("WasRecentlySent() error: %v", err)
	}
	if sent {
		t.Fatalf("expected miss after TTL elapsed")
	}
}

func TestRedisCooldownCache_ContextCanceled(t *testing.T) {
	t.Parallel()

	_, c := newTestCache(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.MarkSent(ctx, "user-1", "req-1"); err == nil {
		t.Fatalf("expected error due to canceled context, got nil")
	}
}
