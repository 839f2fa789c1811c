// Package boundarytest provides an in-memory boundary.Store for component
// tests, mimicking the Postgres adapter's observable behavior.
package boundarytest

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"stockroom/internal/boundary"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"
)

type cellRow struct {
	storageID int
	raw       []byte
	x         int
	y         int
	occupied  bool
	itemID    *int
	itemType  string
}

type FakeStore struct {
	mu        sync.Mutex
	nextLocID int
	nextMatID int
	locations map[int]models.Location
	cells     []cellRow
	materials []models.Material
	logRows   []models.AllocationLogEntry

	// Injectable failures, applied on the next matching call.
	FailUpsertCell     error
	FailDeleteCell     error
	FailUpdateLocation error
}

var _ boundary.Store = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{locations: make(map[int]models.Location)}
}

// SeedLocation inserts a location bypassing validation, returning its id.
func (f *FakeStore) SeedLocation(loc models.Location) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextLocID++
	loc.ID = f.nextLocID
	if loc.LastModified.IsZero() {
		loc.LastModified = time.Now().UTC()
	}
	f.locations[loc.ID] = loc
	return loc.ID
}

// SeedRawCell inserts a cell row with the given raw position encoding, the
// way legacy boundary rows look.
func (f *FakeStore) SeedRawCell(storageID int, rawPosition string, itemID int, itemType string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := itemID
	f.cells = append(f.cells, cellRow{
		storageID: storageID,
		raw:       []byte(rawPosition),
		occupied:  true,
		itemID:    &id,
		itemType:  itemType,
	})
}

func (f *FakeStore) LocationByID(id int) (models.Location, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.locations[id]
	return loc, ok
}

func (f *FakeStore) CellCount(storageID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.cells {
		if c.storageID == storageID {
			count++
		}
	}
	return count
}

func (f *FakeStore) ListLocations(_ context.Context, p models.Pagination, filters models.LocationFilters) (*models.LocationPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p.Normalize()

	var matched []models.Location
	for _, loc := range f.locations {
		if !matchesFilters(loc, filters) {
			continue
		}
		matched = append(matched, loc)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	return &models.LocationPage{
		Data:     append([]models.Location(nil), matched[start:end]...),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

func matchesFilters(loc models.Location, f models.LocationFilters) bool {
	if len(f.Types) > 0 && !containsType(f.Types, loc.Type) {
		return false
	}
	if len(f.Sections) > 0 && !contains(f.Sections, loc.Section) {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, loc.Status) {
		return false
	}
	percent := loc.UtilizationPercent()
	if f.MinUtilization != nil && percent < *f.MinUtilization {
		return false
	}
	if f.MaxUtilization != nil && percent > *f.MaxUtilization {
		return false
	}
	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsType(values []models.LocationType, v models.LocationType) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func (f *FakeStore) GetLocation(_ context.Context, id int) (*models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	loc, ok := f.locations[id]
	if !ok {
		return nil, custom_error.NewNotFound("location", id)
	}
	return &loc, nil
}

func (f *FakeStore) InsertLocation(_ context.Context, loc *models.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextLocID++
	loc.ID = f.nextLocID
	loc.LastModified = time.Now().UTC()
	f.locations[loc.ID] = *loc
	return nil
}

func (f *FakeStore) UpdateLocation(_ context.Context, id int, patch models.LocationPatch) (*models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailUpdateLocation != nil {
		err := f.FailUpdateLocation
		f.FailUpdateLocation = nil
		return nil, err
	}

	loc, ok := f.locations[id]
	if !ok {
		return nil, custom_error.NewNotFound("location", id)
	}

	if patch.Name != nil {
		loc.Name = *patch.Name
	}
	if patch.Type != nil {
		loc.Type = *patch.Type
	}
	if patch.Section != nil {
		loc.Section = *patch.Section
	}
	if patch.Capacity != nil {
		loc.Capacity = *patch.Capacity
	}
	if patch.Utilized != nil {
		loc.Utilized = *patch.Utilized
	}
	if patch.Status != nil {
		loc.Status = *patch.Status
	}
	loc.LastModified = time.Now().UTC()

	f.locations[id] = loc
	return &loc, nil
}

func (f *FakeStore) DeleteLocation(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.locations[id]; !ok {
		return custom_error.NewNotFound("location", id)
	}
	delete(f.locations, id)

	kept := f.cells[:0]
	for _, c := range f.cells {
		if c.storageID != id {
			kept = append(kept, c)
		}
	}
	f.cells = kept
	return nil
}

func (f *FakeStore) GetCells(_ context.Context, storageID int) ([]models.CellRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []models.CellRecord
	for _, c := range f.cells {
		if c.storageID != storageID {
			continue
		}
		raw := c.raw
		if raw == nil {
			raw, _ = json.Marshal(models.Position{X: c.x, Y: c.y})
		}
		records = append(records, models.CellRecord{
			StorageID:   c.storageID,
			PositionRaw: raw,
			Occupied:    c.occupied,
			ItemID:      c.itemID,
			ItemType:    c.itemType,
		})
	}
	return records, nil
}

func (f *FakeStore) UpsertCell(_ context.Context, cell models.Cell) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailUpsertCell != nil {
		err := f.FailUpsertCell
		f.FailUpsertCell = nil
		return err
	}

	kept := f.cells[:0]
	for _, c := range f.cells {
		if c.storageID == cell.StorageID && c.x == cell.Position.X && c.y == cell.Position.Y && c.raw == nil {
			continue
		}
		kept = append(kept, c)
	}
	f.cells = kept

	f.cells = append(f.cells, cellRow{
		storageID: cell.StorageID,
		x:         cell.Position.X,
		y:         cell.Position.Y,
		occupied:  cell.Occupied,
		itemID:    cell.ItemID,
		itemType:  cell.ItemType,
	})
	return nil
}

func (f *FakeStore) DeleteCellByItem(_ context.Context, storageID, itemID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailDeleteCell != nil {
		err := f.FailDeleteCell
		f.FailDeleteCell = nil
		return false, err
	}

	for i, c := range f.cells {
		if c.storageID == storageID && c.itemID != nil && *c.itemID == itemID {
			f.cells = append(f.cells[:i], f.cells[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeStore) ListMaterials(_ context.Context, p models.Pagination, filters models.MaterialFilters) (*models.MaterialPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p.Normalize()

	var matched []models.Material
	for _, m := range f.materials {
		if len(filters.Categories) > 0 && !contains(filters.Categories, m.Category) {
			continue
		}
		if filters.StorageID != nil && (m.StorageID == nil || *m.StorageID != *filters.StorageID) {
			continue
		}
		matched = append(matched, m)
	}

	total := len(matched)
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	return &models.MaterialPage{
		Data:     append([]models.Material(nil), matched[start:end]...),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

func (f *FakeStore) InsertMaterial(_ context.Context, m *models.Material) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextMatID++
	m.ID = f.nextMatID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	f.materials = append(f.materials, *m)
	return nil
}

func (f *FakeStore) AppendAllocationLog(_ context.Context, entry models.AllocationLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry.ID = len(f.logRows) + 1
	entry.CreatedAt = time.Now().UTC()
	f.logRows = append(f.logRows, entry)
	return nil
}

func (f *FakeStore) ListAllocationLog(_ context.Context, storageID int) ([]models.AllocationLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []models.AllocationLogEntry
	for _, e := range f.logRows {
		if (e.FromStorageID != nil && *e.FromStorageID == storageID) ||
			(e.ToStorageID != nil && *e.ToStorageID == storageID) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
