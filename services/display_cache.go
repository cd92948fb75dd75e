package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fire-department-api/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss means no cached copy exists for the requested key.
var ErrCacheMiss = errors.New("display cache miss")

// CachedApplications is a stale, read-only snapshot of an application
// list. It is served only when the authoritative database read fails,
// and responses built from it must carry a stale indicator.
type CachedApplications struct {
	FetchedAt    time.Time                       `json:"fetched_at"`
	Applications []models.CertificateApplication `json:"applications"`
}

// DisplayCache mirrors successful list reads into Redis. It is never a
// write path of record: Store is called only after the database returned
// the rows, and nothing read from the cache is ever written back.
type DisplayCache struct {
	rdb *redis.Client
	ttl time.Duration
}

const displayCacheTTL = 10 * time.Minute

func NewDisplayCache(rdb *redis.Client) *DisplayCache {
	return &DisplayCache{rdb: rdb, ttl: displayCacheTTL}
}

// Enabled reports whether a Redis client is configured.
func (c *DisplayCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Store snapshots an authoritative list read.
func (c *DisplayCache) Store(ctx context.Context, key string, apps []models.CertificateApplication) error {
	if !c.Enabled() {
		return nil
	}

	snapshot := CachedApplications{
		FetchedAt:    time.Now(),
		Applications: apps,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode cache snapshot: %w", err)
	}

	if err := c.rdb.Set(ctx, c.cacheKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cache snapshot: %w", err)
	}
	return nil
}

// Fetch returns the last snapshot for key, if any.
func (c *DisplayCache) Fetch(ctx context.Context, key string) (*CachedApplications, error) {
	if !c.Enabled() {
		return nil, ErrCacheMiss
	}

	payload, err := c.rdb.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache snapshot: %w", err)
	}

	var snapshot CachedApplications
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cache snapshot: %w", err)
	}
	return &snapshot, nil
}

func (c *DisplayCache) cacheKey(key string) string {
	return "display:applications:" + key
}
