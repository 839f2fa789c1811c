package boundary

import (
	"context"
	"time"

	"stockroom/pkg/models"
)

const DefaultTimeout = 5 * time.Second

// Timed bounds every boundary call with a deadline so no caller can block
// indefinitely on the network hop.
func Timed(store Store, timeout time.Duration) Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &timedStore{next: store, timeout: timeout}
}

type timedStore struct {
	next    Store
	timeout time.Duration
}

func (t *timedStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, t.timeout)
}

func (t *timedStore) ListLocations(ctx context.Context, p models.Pagination, f models.LocationFilters) (*models.LocationPage, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.ListLocations(ctx, p, f)
}

func (t *timedStore) GetLocation(ctx context.Context, id int) (*models.Location, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.GetLocation(ctx, id)
}

func (t *timedStore) InsertLocation(ctx context.Context, loc *models.Location) error {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.InsertLocation(ctx, loc)
}

func (t *timedStore) UpdateLocation(ctx context.Context, id int, patch models.LocationPatch) (*models.Location, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.UpdateLocation(ctx, id, patch)
}

func (t *timedStore) DeleteLocation(ctx context.Context, id int) error {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.DeleteLocation(ctx, id)
}

func (t *timedStore) GetCells(ctx context.Context, storageID int) ([]models.CellRecord, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.GetCells(ctx, storageID)
}

func (t *timedStore) UpsertCell(ctx context.Context, cell models.Cell) error {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.UpsertCell(ctx, cell)
}

func (t *timedStore) DeleteCellByItem(ctx context.Context, storageID, itemID int) (bool, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.DeleteCellByItem(ctx, storageID, itemID)
}

func (t *timedStore) ListMaterials(ctx context.Context, p models.Pagination, f models.MaterialFilters) (*models.MaterialPage, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.ListMaterials(ctx, p, f)
}

func (t *timedStore) InsertMaterial(ctx context.Context, m *models.Material) error {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.InsertMaterial(ctx, m)
}

func (t *timedStore) AppendAllocationLog(ctx context.Context, entry models.AllocationLogEntry) error {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.AppendAllocationLog(ctx, entry)
}

func (t *timedStore) ListAllocationLog(ctx context.Context, storageID int) ([]models.AllocationLogEntry, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()
	return t.next.ListAllocationLog(ctx, storageID)
}
