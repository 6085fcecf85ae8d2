package store

import (
	"context"
	"sync"
	"time"

	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/api"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

// API is the slice of the remote client the store drives. Kept as an interface
// so tests can run against a mock.
type API interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
	CreateListing(ctx context.Context, in domain.ListingInput, image *api.ImageFile) (*domain.Listing, error)
	UpdateListing(ctx context.Context, id domain.ListingID, in domain.ListingInput, image *api.ImageFile) (*domain.Listing, error)
	DeleteListing(ctx context.Context, id domain.ListingID) error
}

// State is one published snapshot of the listings cache plus the
// request-lifecycle flags. Items is the single source of truth for every view.
type State struct {
	Items      []domain.Listing
	Loading    bool
	Saving     bool
	DeletingID domain.ListingID
	Error      string
}

// Store is the shared cache of the listing collection. All mutation flows
// through the methods below; each applies its patch atomically under the lock,
// so readers never observe a half-applied update. Operations of different
// kinds run concurrently; overlapping operations of the same kind are not
// deduplicated and the last one to settle wins the shared scalar fields.
type Store struct {
	mu        sync.Mutex
	state     State
	fetchedAt time.Time
	api       API
	log       logger.Logger
}

func New(apiClient API, log logger.Logger) *Store {
	return &Store{api: apiClient, log: log}
}

// Snapshot returns a copy of the current state. The items slice is copied so
// a caller can never reach into the cache.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Items = make([]domain.Listing, len(s.state.Items))
	copy(snapshot.Items, s.state.Items)
	return snapshot
}

// Items returns a copy of the cached collection.
func (s *Store) Items() []domain.Listing {
	return s.Snapshot().Items
}

// Fetch replaces the cached collection with the backend's. An empty backend
// collection empties the cache; on failure the cache is left untouched.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	items, err := s.api.Listings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.Error = err.Error()
		s.log.Warnf("listings fetch failed: %v", err)
		return err
	}
	if items == nil {
		items = []domain.Listing{}
	}
	s.state.Items = items
	s.fetchedAt = time.Now()
	s.log.Debugf("listings fetched: %d items", len(items))
	return nil
}

// FetchIfStale fetches when the cache has never been filled or is older than
// ttl. This replaces the web client's fetch-on-every-mount behaviour with an
// explicit freshness policy.
func (s *Store) FetchIfStale(ctx context.Context, ttl time.Duration) error {
	s.mu.Lock()
	fresh := !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < ttl
	s.mu.Unlock()

	if fresh {
		return nil
	}
	return s.Fetch(ctx)
}

// Create posts a new listing and prepends the backend's echo of it, so the
// newest listing shows first.
func (s *Store) Create(ctx context.Context, in domain.ListingInput, image *api.ImageFile) (*domain.Listing, error) {
	s.mu.Lock()
	s.state.Saving = true
	s.state.Error = ""
	s.mu.Unlock()

	created, err := s.api.CreateListing(ctx, in, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Saving = false
	if err != nil {
		s.state.Error = err.Error()
		return nil, err
	}
	s.state.Items = append([]domain.Listing{*created}, s.state.Items...)
	return created, nil
}

// Update replaces the cached element whose id matches the returned listing.
// No cached element matching is a no-op; a correct backend never produces it.
func (s *Store) Update(ctx context.Context, id domain.ListingID, in domain.ListingInput, image *api.ImageFile) (*domain.Listing, error) {
	s.mu.Lock()
	s.state.Saving = true
	s.state.Error = ""
	s.mu.Unlock()

	updated, err := s.api.UpdateListing(ctx, id, in, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Saving = false
	if err != nil {
		s.state.Error = err.Error()
		return nil, err
	}
	for i, item := range s.state.Items {
		if item.ID == updated.ID {
			s.state.Items[i] = *updated
			break
		}
	}
	return updated, nil
}

// Delete removes the listing with the requested id from the cache once the
// backend confirms.
func (s *Store) Delete(ctx context.Context, id domain.ListingID) error {
	s.mu.Lock()
	s.state.DeletingID = id
	s.state.Error = ""
	s.mu.Unlock()

	err := s.api.DeleteListing(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DeletingID = ""
	if err != nil {
		s.state.Error = err.Error()
		return err
	}
	kept := make([]domain.Listing, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.state.Items = kept
	return nil
}

// Find looks a listing up in the current snapshot by id.
func (s *Store) Find(id domain.ListingID) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.state.Items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}
