package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"espejo-admin/internal/domain"
)

const (
	cacheKey = "espejo:snapshot"
	cacheTTL = 24 * time.Hour
)

// SnapshotCache keeps a best-effort copy of the last good snapshot in Redis
// so a restarted or sibling dashboard instance starts warm instead of blank.
// It is advisory only: refresh failures never fall back to it.
type SnapshotCache struct {
	rdb *redis.Client
}

func NewSnapshotCache(rdb *redis.Client) *SnapshotCache {
	return &SnapshotCache{rdb: rdb}
}

func (c *SnapshotCache) Save(ctx context.Context, snapshot domain.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey, raw, cacheTTL).Err()
}

// Load returns the cached snapshot, or ok=false when none is cached.
func (c *SnapshotCache) Load(ctx context.Context) (domain.Snapshot, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.Snapshot{}, false, err
	}
	return snapshot, true, nil
}
