package cellindex

import (
	"context"
	"testing"

	"stockroom/internal/boundary/boundarytest"
	"stockroom/internal/notify"
	"stockroom/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestIndex(store *boundarytest.FakeStore) *Index {
	return NewIndex(store, notify.NewHub(), zap.NewNop())
}

func intPtr(v int) *int { return &v }

func TestNormalizePosition(t *testing.T) {
	pos, err := NormalizePosition(models.RawPosition{X: intPtr(3), Y: intPtr(7)})
	assert.NoError(t, err)
	assert.Equal(t, models.Position{X: 3, Y: 7}, pos)

	// Legacy encoding: row maps to y, col maps to x.
	pos, err = NormalizePosition(models.RawPosition{Row: intPtr(2), Col: intPtr(5)})
	assert.NoError(t, err)
	assert.Equal(t, models.Position{X: 5, Y: 2}, pos)

	_, err = NormalizePosition(models.RawPosition{X: intPtr(1)})
	assert.Error(t, err)
}

func TestCellsForNormalizesLegacyRows(t *testing.T) {
	store := boundarytest.NewFakeStore()
	locID := store.SeedLocation(models.Location{Name: "Cabinet A", Type: models.LocationCabinet, Capacity: 10})
	store.SeedRawCell(locID, `{"row": 2, "col": 3}`, 42, "leather")
	store.SeedRawCell(locID, `{"x": 0, "y": 1}`, 43, "thread")

	index := newTestIndex(store)

	cells, err := index.CellsFor(context.Background(), locID)
	assert.NoError(t, err)
	assert.Len(t, cells, 2)
	assert.Equal(t, models.Position{X: 0, Y: 1}, cells[0].Position)
	assert.Equal(t, models.Position{X: 3, Y: 2}, cells[1].Position)
	assert.Equal(t, 42, *cells[1].ItemID)
}

func TestAssignLastWriteWins(t *testing.T) {
	store := boundarytest.NewFakeStore()
	locID := store.SeedLocation(models.Location{Name: "Drawer 1", Type: models.LocationDrawer, Capacity: 4})

	index := newTestIndex(store)
	ctx := context.Background()

	wasOccupied, err := index.Assign(ctx, 42, locID, models.Position{X: 0, Y: 0}, "leather")
	assert.NoError(t, err)
	assert.False(t, wasOccupied)

	// Same coordinate, different item: the previous occupant is replaced
	// silently.
	wasOccupied, err = index.Assign(ctx, 43, locID, models.Position{X: 0, Y: 0}, "thread")
	assert.NoError(t, err)
	assert.True(t, wasOccupied)

	cells, err := index.CellsFor(ctx, locID)
	assert.NoError(t, err)
	assert.Len(t, cells, 1)
	assert.Equal(t, 43, *cells[0].ItemID)
}

func TestRemoveMatchesByItemIdentity(t *testing.T) {
	store := boundarytest.NewFakeStore()
	locID := store.SeedLocation(models.Location{Name: "Shelf 2", Type: models.LocationShelf, Capacity: 4})

	index := newTestIndex(store)
	ctx := context.Background()

	_, err := index.Assign(ctx, 42, locID, models.Position{X: 1, Y: 1}, "leather")
	assert.NoError(t, err)

	removed, err := index.Remove(ctx, 42, locID)
	assert.NoError(t, err)
	assert.NotNil(t, removed)
	assert.Equal(t, "leather", removed.ItemType)

	removed, err = index.Remove(ctx, 42, locID)
	assert.NoError(t, err)
	assert.Nil(t, removed)
}

func TestInvalidateDropsLocationCells(t *testing.T) {
	store := boundarytest.NewFakeStore()
	locID := store.SeedLocation(models.Location{Name: "Rack 9", Type: models.LocationRack, Capacity: 4})

	index := newTestIndex(store)
	ctx := context.Background()

	_, err := index.Assign(ctx, 7, locID, models.Position{X: 0, Y: 0}, "buckle")
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"buckle": 1}, index.Breakdown())

	index.Invalidate(locID)
	assert.Empty(t, index.Breakdown())
}
