package services

import (
	"context"
	"errors"
	"testing"

	"fire-department-api/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*DisplayCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return NewDisplayCache(rdb), srv
}

func TestDisplayCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	apps := []models.CertificateApplication{
		{ApplicationID: 1, Status: "pending", FullName: "A. Citizen"},
		{ApplicationID: 2, Status: "approved", FullName: "B. Citizen"},
	}
	if err := cache.Store(ctx, "all", apps); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	snapshot, err := cache.Fetch(ctx, "all")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(snapshot.Applications) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(snapshot.Applications))
	}
	if snapshot.Applications[0].ApplicationID != 1 || snapshot.Applications[1].Status != "approved" {
		t.Fatalf("unexpected snapshot: %+v", snapshot.Applications)
	}
	if snapshot.FetchedAt.IsZero() {
		t.Fatalf("expected fetched-at stamp")
	}
}

func TestDisplayCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	if _, err := cache.Fetch(context.Background(), "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestDisplayCacheExpiry(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	if err := cache.Store(ctx, "all", []models.CertificateApplication{{ApplicationID: 1}}); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	srv.FastForward(displayCacheTTL * 2)

	if _, err := cache.Fetch(ctx, "all"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestDisplayCacheDisabledIsSafe(t *testing.T) {
	cache := NewDisplayCache(nil)
	ctx := context.Background()

	if err := cache.Store(ctx, "all", nil); err != nil {
		t.Fatalf("disabled cache Store should be a no-op: %v", err)
	}
	if _, err := cache.Fetch(ctx, "all"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss from disabled cache, got %v", err)
	}
}
