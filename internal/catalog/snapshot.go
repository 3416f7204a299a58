package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"saleor-tma-bot/pkg/redis"
)

const snapshotName = "snapshot"

// KeyValue is the subset of the redis client used for snapshots.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(name string) string
}

// SnapshotStore keeps the last successfully fetched live catalog.
type SnapshotStore struct {
	kv  KeyValue
	ttl time.Duration
	now func() time.Time
}

type snapshot struct {
	Items       []Item       `json:"items"`
	Restaurants []Restaurant `json:"restaurants"`
	SavedAt     time.Time    `json:"saved_at"`
}

func NewSnapshotStore(kv KeyValue, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{kv: kv, ttl: ttl, now: time.Now}
}

func (s *SnapshotStore) Save(ctx context.Context, t *Tables) error {
	payload, err := json.Marshal(snapshot{
		Items:       t.Items(),
		Restaurants: t.Restaurants(),
		SavedAt:     s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CatalogKey(snapshotName), string(payload), s.ttl); err != nil {
		return fmt.Errorf("store catalog snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot; ok is false when none exists.
func (s *SnapshotStore) Load(ctx context.Context) (*Tables, bool, error) {
	raw, err := s.kv.Get(ctx, s.kv.CatalogKey(snapshotName))
	if errors.Is(err, redis.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read catalog snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, false, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return NewTables(snap.Items, snap.Restaurants), true, nil
}
