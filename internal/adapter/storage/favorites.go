package storage

import (
	"context"
	"encoding/json"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

// Favorites is the persisted set of saved listings. Entries are full listing
// snapshots keyed by id, not just ids: a saved listing stays viewable offline
// and survives the backend record changing or disappearing. Drift from the
// live record is accepted.
type Favorites struct {
	kv  KV
	log logger.Logger
}

func NewFavorites(kv KV, log logger.Logger) *Favorites {
	return &Favorites{kv: kv, log: log}
}

// All returns the favorite set in insertion order. Absent or malformed stored
// data yields the empty set.
func (f *Favorites) All(ctx context.Context) []domain.Listing {
	raw, err := f.kv.Get(ctx, KeyFavorites)
	if err != nil {
		return nil
	}
	var items []domain.Listing
	if err := json.Unmarshal(raw, &items); err != nil {
		f.log.Warnf("stored favorites are malformed, ignoring: %v", err)
		return nil
	}
	return items
}

// Add inserts the listing unless an entry with the same id already exists.
func (f *Favorites) Add(ctx context.Context, item domain.Listing) error {
	items := f.All(ctx)
	for _, fav := range items {
		if fav.ID == item.ID {
			return nil
		}
	}
	return f.save(ctx, append(items, item))
}

func (f *Favorites) Remove(ctx context.Context, id domain.ListingID) error {
	items := f.All(ctx)
	kept := items[:0]
	for _, fav := range items {
		if fav.ID != id {
			kept = append(kept, fav)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return f.save(ctx, kept)
}

func (f *Favorites) IsFavorite(ctx context.Context, id domain.ListingID) bool {
	for _, fav := range f.All(ctx) {
		if fav.ID == id {
			return true
		}
	}
	return false
}

// Count never fails: an empty or unreadable favorites record counts as zero.
func (f *Favorites) Count(ctx context.Context) int {
	return len(f.All(ctx))
}

func (f *Favorites) save(ctx context.Context, items []domain.Listing) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return f.kv.Set(ctx, KeyFavorites, raw)
}
