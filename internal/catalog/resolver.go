package catalog

import (
	"context"
	"sync/atomic"

	pkgerrors "saleor-tma-bot/pkg/errors"
	"saleor-tma-bot/pkg/logger"
	"saleor-tma-bot/pkg/metrics"
)

// Source is the live catalog query path (the commerce backend).
type Source interface {
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	ListProducts(ctx context.Context, limit int, restaurantID ID) ([]Item, error)
}

type ResolverParams struct {
	Fallback     *Tables
	Source       Source
	Snapshots    *SnapshotStore
	ProductLimit int
	Logger       *logger.Logger
	Metrics      *metrics.Bot
}

// Resolver maps identifiers to catalog entries: live table first, fallback table second.
// Lookups never fail; an unknown id reports ok=false.
type Resolver struct {
	fallback  *Tables
	live      atomic.Pointer[Tables]
	source    Source
	snapshots *SnapshotStore
	limit     int
	logg      *logger.Logger
	metrics   *metrics.Bot
}

func NewResolver(p ResolverParams) *Resolver {
	fallback := p.Fallback
	if fallback == nil {
		fallback = NewTables(nil, nil)
	}
	limit := p.ProductLimit
	if limit <= 0 {
		limit = 20
	}
	r := &Resolver{
		fallback:  fallback,
		source:    p.Source,
		snapshots: p.Snapshots,
		limit:     limit,
		logg:      p.Logger,
		metrics:   p.Metrics,
	}
	r.metrics.SetCatalogItems("fallback", fallback.Len())
	return r
}

// Refresh loads the live tables from the Source. On failure the last Redis snapshot,
// if any, becomes the live table and a CATALOG_UNAVAILABLE error is returned for logging;
// lookups keep working either way.
func (r *Resolver) Refresh(ctx context.Context) error {
	if r.source == nil {
		return nil
	}

	tables, err := r.fetch(ctx)
	if err == nil {
		r.live.Store(tables)
		r.metrics.SetCatalogItems("live", tables.Len())
		if r.snapshots != nil {
			if serr := r.snapshots.Save(ctx, tables); serr != nil && r.logg != nil {
				r.logg.Error(ctx, "catalog.snapshot_save_failed", serr)
			}
		}
		return nil
	}

	if r.snapshots != nil {
		snap, ok, serr := r.snapshots.Load(ctx)
		switch {
		case serr != nil:
			if r.logg != nil {
				r.logg.Error(ctx, "catalog.snapshot_load_failed", serr)
			}
		case ok:
			r.live.Store(snap)
			r.metrics.SetCatalogItems("snapshot", snap.Len())
			if r.logg != nil {
				r.logg.Warn(r.logg.WithField(ctx, "items", snap.Len()), "catalog.snapshot_restored")
			}
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeCatalogUnavailable, err, "live catalog unavailable")
}

func (r *Resolver) fetch(ctx context.Context) (*Tables, error) {
	restaurants, err := r.source.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.source.ListProducts(ctx, r.limit, "")
	if err != nil {
		return nil, err
	}
	return NewTables(items, restaurants), nil
}

func (r *Resolver) ResolveItem(id ID) (Item, bool) {
	if it, ok := r.live.Load().Item(id); ok {
		return it, true
	}
	return r.fallback.Item(id)
}

func (r *Resolver) ResolveRestaurant(id ID) (Restaurant, bool) {
	if rest, ok := r.live.Load().Restaurant(id); ok {
		return rest, true
	}
	return r.fallback.Restaurant(id)
}

// Restaurants lists the live restaurants, or the fallback ones when none are loaded.
func (r *Resolver) Restaurants() []Restaurant {
	if live := r.live.Load(); live != nil && len(live.restaurants) > 0 {
		return live.Restaurants()
	}
	return r.fallback.Restaurants()
}

// Items lists the live items, or the fallback ones when none are loaded.
func (r *Resolver) Items() []Item {
	if live := r.live.Load(); live.Len() > 0 {
		return live.Items()
	}
	return r.fallback.Items()
}

// Live reports whether a live or snapshot table is loaded.
func (r *Resolver) Live() bool {
	return r.live.Load() != nil
}
