package registry

import (
	"context"
	"sync"

	"stockroom/internal/boundary"
	"stockroom/internal/cellindex"
	"stockroom/internal/notify"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"go.uber.org/zap"
)

// Registry owns the Location records. All mutation goes through it (or the
// allocation engine, which routes back through it); nothing else touches the
// cache.
type Registry struct {
	store boundary.Store
	cells *cellindex.Index
	hub   *notify.Hub
	log   *zap.Logger

	mu    sync.RWMutex
	cache map[int]models.Location
}

func NewRegistry(store boundary.Store, cells *cellindex.Index, hub *notify.Hub, log *zap.Logger) *Registry {
	return &Registry{
		store: store,
		cells: cells,
		hub:   hub,
		log:   log,
		cache: make(map[int]models.Location),
	}
}

func validTypes() map[models.LocationType]bool {
	return map[models.LocationType]bool{
		models.LocationCabinet: true,
		models.LocationDrawer:  true,
		models.LocationShelf:   true,
		models.LocationRack:    true,
	}
}

func (r *Registry) List(ctx context.Context, p models.Pagination, f models.LocationFilters) (*models.LocationPage, error) {
	page, err := r.store.ListLocations(ctx, p, f)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	for _, loc := range page.Data {
		r.cache[loc.ID] = loc
	}
	r.mu.Unlock()

	return page, nil
}

func (r *Registry) Get(ctx context.Context, id int) (*models.Location, error) {
	r.mu.RLock()
	cached, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return &cached, nil
	}

	loc, err := r.store.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[loc.ID] = *loc
	r.mu.Unlock()

	return loc, nil
}

func (r *Registry) Create(ctx context.Context, loc models.Location) (*models.Location, error) {
	if loc.Name == "" {
		return nil, custom_error.NewValidation("name", "must not be empty")
	}
	if !validTypes()[loc.Type] {
		return nil, custom_error.NewValidation("type", "must be one of cabinet, drawer, shelf, rack")
	}
	if loc.Capacity < 0 {
		return nil, custom_error.NewValidation("capacity", "must not be negative")
	}
	if loc.Utilized < 0 {
		loc.Utilized = 0
	}
	if loc.Utilized > loc.Capacity {
		return nil, custom_error.NewValidation("utilized", "must not exceed capacity")
	}
	if loc.Status == "" {
		loc.Status = "active"
	}

	if err := r.store.InsertLocation(ctx, &loc); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[loc.ID] = loc
	r.mu.Unlock()

	r.hub.Publish(notify.Event{Kind: notify.LocationUpserted, StorageID: loc.ID, Location: &loc})

	return &loc, nil
}

func (r *Registry) Update(ctx context.Context, id int, patch models.LocationPatch) (*models.Location, error) {
	if patch.Type != nil && !validTypes()[*patch.Type] {
		return nil, custom_error.NewValidation("type", "must be one of cabinet, drawer, shelf, rack")
	}
	if patch.Capacity != nil && *patch.Capacity < 0 {
		return nil, custom_error.NewValidation("capacity", "must not be negative")
	}
	if patch.Utilized != nil && *patch.Utilized < 0 {
		return nil, custom_error.NewValidation("utilized", "must not be negative")
	}

	loc, err := r.store.UpdateLocation(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[loc.ID] = *loc
	r.mu.Unlock()

	r.hub.Publish(notify.Event{Kind: notify.LocationUpserted, StorageID: loc.ID, Location: loc})

	return loc, nil
}

func (r *Registry) Delete(ctx context.Context, id int) error {
	if err := r.store.DeleteLocation(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.cache, id)
	r.mu.Unlock()

	// The boundary cascades the cells, the cache has to follow.
	r.cells.Invalidate(id)

	r.hub.Publish(notify.Event{Kind: notify.LocationDeleted, StorageID: id})

	return nil
}

// Snapshot returns a copy of every cached location.
func (r *Registry) Snapshot() []models.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]models.Location, 0, len(r.cache))
	for _, loc := range r.cache {
		locations = append(locations, loc)
	}
	return locations
}

// RefreshAll warms the cache with every location, paging through the
// boundary.
func (r *Registry) RefreshAll(ctx context.Context) error {
	page := 1
	for {
		result, err := r.List(ctx, models.Pagination{Page: page, PageSize: 200}, models.LocationFilters{})
		if err != nil {
			return err
		}
		if page*result.PageSize >= result.Total || len(result.Data) == 0 {
			return nil
		}
		page++
	}
}
