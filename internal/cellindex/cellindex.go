package cellindex

import (
	"context"
	"sort"
	"sync"

	"stockroom/internal/boundary"
	"stockroom/internal/notify"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"go.uber.org/zap"
)

type cellKey struct {
	storageID int
	x         int
	y         int
}

// Index caches the cell grid per location, merged into one global map keyed
// by (storageId, x, y). It is the single place raw boundary positions get
// normalized.
type Index struct {
	store boundary.Store
	hub   *notify.Hub
	log   *zap.Logger

	mu     sync.RWMutex
	cells  map[cellKey]models.Cell
	loaded map[int]bool
}

func NewIndex(store boundary.Store, hub *notify.Hub, log *zap.Logger) *Index {
	return &Index{
		store:  store,
		hub:    hub,
		log:    log,
		cells:  make(map[cellKey]models.Cell),
		loaded: make(map[int]bool),
	}
}

// NormalizePosition converts either wire encoding into grid coordinates.
// Older boundary rows carry {row, col}; row maps to y and col to x.
func NormalizePosition(raw models.RawPosition) (models.Position, error) {
	if raw.X != nil && raw.Y != nil {
		return models.Position{X: *raw.X, Y: *raw.Y}, nil
	}
	if raw.Row != nil && raw.Col != nil {
		return models.Position{X: *raw.Col, Y: *raw.Row}, nil
	}
	return models.Position{}, custom_error.NewValidation("position", "needs either x/y or row/col")
}

// CellsFor returns the cells of a location, fetching from the boundary on
// first access and serving the cache afterwards.
func (i *Index) CellsFor(ctx context.Context, storageID int) ([]models.Cell, error) {
	if err := i.ensureLoaded(ctx, storageID); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var cells []models.Cell
	for key, cell := range i.cells {
		if key.storageID == storageID {
			cells = append(cells, cell)
		}
	}

	sort.Slice(cells, func(a, b int) bool {
		if cells[a].Position.Y != cells[b].Position.Y {
			return cells[a].Position.Y < cells[b].Position.Y
		}
		return cells[a].Position.X < cells[b].Position.X
	})

	return cells, nil
}

// Assign writes the cell at the exact coordinate and marks it occupied.
// A different item already at that coordinate is replaced silently, last
// write wins. The return value reports whether the coordinate was occupied
// before the write.
func (i *Index) Assign(ctx context.Context, itemID, storageID int, pos models.Position, itemType string) (bool, error) {
	if err := i.ensureLoaded(ctx, storageID); err != nil {
		return false, err
	}

	id := itemID
	cell := models.Cell{
		StorageID: storageID,
		Position:  pos,
		Occupied:  true,
		ItemID:    &id,
		ItemType:  itemType,
	}

	if err := i.store.UpsertCell(ctx, cell); err != nil {
		return false, err
	}

	key := cellKey{storageID: storageID, x: pos.X, y: pos.Y}

	i.mu.Lock()
	previous, existed := i.cells[key]
	i.cells[key] = cell
	i.mu.Unlock()

	wasOccupied := existed && previous.Occupied
	if wasOccupied && previous.ItemID != nil && *previous.ItemID != itemID {
		i.log.Warn("cell overwrite",
			zap.Int("storage_id", storageID),
			zap.Int("replaced_item", *previous.ItemID),
			zap.Int("item", itemID))
	}

	i.hub.Publish(notify.Event{Kind: notify.CellAssigned, StorageID: storageID, ItemID: &id})

	return wasOccupied, nil
}

// Remove deletes the cell holding the item within the location, matched by
// item identity rather than position. At most one entry goes away; the
// removed cell comes back so a move can carry the item type across. Nil
// means no cell held the item.
func (i *Index) Remove(ctx context.Context, itemID, storageID int) (*models.Cell, error) {
	if err := i.ensureLoaded(ctx, storageID); err != nil {
		return nil, err
	}

	found, err := i.store.DeleteCellByItem(ctx, storageID, itemID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var removed *models.Cell
	i.mu.Lock()
	for key, cell := range i.cells {
		if key.storageID == storageID && cell.ItemID != nil && *cell.ItemID == itemID {
			c := cell
			removed = &c
			delete(i.cells, key)
			break
		}
	}
	i.mu.Unlock()

	if removed == nil {
		// The boundary had a row the cache never saw; report the bare fact.
		removed = &models.Cell{StorageID: storageID, Occupied: true}
	}

	id := itemID
	i.hub.Publish(notify.Event{Kind: notify.CellRemoved, StorageID: storageID, ItemID: &id})

	return removed, nil
}

// Invalidate drops a location's cells from the cache, used after a cascade
// delete.
func (i *Index) Invalidate(storageID int) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for key := range i.cells {
		if key.storageID == storageID {
			delete(i.cells, key)
		}
	}
	delete(i.loaded, storageID)
}

// Breakdown counts occupied cells per item type across everything cached.
func (i *Index) Breakdown() map[string]int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	breakdown := make(map[string]int)
	for _, cell := range i.cells {
		if cell.Occupied {
			breakdown[cell.ItemType]++
		}
	}
	return breakdown
}

func (i *Index) ensureLoaded(ctx context.Context, storageID int) error {
	i.mu.RLock()
	done := i.loaded[storageID]
	i.mu.RUnlock()
	if done {
		return nil
	}

	records, err := i.store.GetCells(ctx, storageID)
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.loaded[storageID] {
		return nil
	}

	for _, record := range records {
		raw, err := record.DecodePosition()
		if err != nil {
			i.log.Warn("skipping cell with undecodable position",
				zap.Int("storage_id", record.StorageID), zap.Error(err))
			continue
		}
		pos, err := NormalizePosition(raw)
		if err != nil {
			i.log.Warn("skipping cell with unknown position encoding",
				zap.Int("storage_id", record.StorageID), zap.Error(err))
			continue
		}

		i.cells[cellKey{storageID: record.StorageID, x: pos.X, y: pos.Y}] = models.Cell{
			StorageID: record.StorageID,
			Position:  pos,
			Occupied:  record.Occupied,
			ItemID:    record.ItemID,
			ItemType:  record.ItemType,
		}
	}
	i.loaded[storageID] = true

	return nil
}
