package overview

import (
	"context"
	"testing"

	"stockroom/internal/boundary/boundarytest"
	"stockroom/internal/cellindex"
	"stockroom/internal/notify"
	"stockroom/internal/registry"
	"stockroom/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestAggregator(store *boundarytest.FakeStore, limit int) *Aggregator {
	log := zap.NewNop()
	hub := notify.NewHub()
	cells := cellindex.NewIndex(store, hub, log)
	reg := registry.NewRegistry(store, cells, hub, log)
	return NewAggregator(reg, cells, limit)
}

func TestComputeOverviewTotals(t *testing.T) {
	store := boundarytest.NewFakeStore()
	a := store.SeedLocation(models.Location{Name: "A", Type: models.LocationCabinet, Capacity: 10, Utilized: 9})
	store.SeedLocation(models.Location{Name: "B", Type: models.LocationShelf, Capacity: 10, Utilized: 2})
	store.SeedLocation(models.Location{Name: "C", Type: models.LocationDrawer, Capacity: 10, Utilized: 5})

	agg := newTestAggregator(store, 5)

	overview, err := agg.ComputeOverview(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 30, overview.TotalCapacity)
	assert.Equal(t, 16, overview.TotalUtilized)
	assert.Equal(t, 53, overview.UtilizationPercentage)

	// Fullest location leads the low-space ranking.
	assert.Len(t, overview.LowSpace, 3)
	assert.Equal(t, a, overview.LowSpace[0].StorageID)
	assert.Equal(t, 90, overview.LowSpace[0].Utilization)
}

func TestComputeOverviewTruncatesLowSpace(t *testing.T) {
	store := boundarytest.NewFakeStore()
	for i := 0; i < 8; i++ {
		store.SeedLocation(models.Location{Name: "L", Type: models.LocationShelf, Capacity: 10, Utilized: i})
	}

	agg := newTestAggregator(store, 3)

	overview, err := agg.ComputeOverview(context.Background())
	assert.NoError(t, err)
	assert.Len(t, overview.LowSpace, 3)
	assert.Equal(t, 70, overview.LowSpace[0].Utilization)
}

func TestComputeOverviewEmptyRegistry(t *testing.T) {
	agg := newTestAggregator(boundarytest.NewFakeStore(), 5)

	overview, err := agg.ComputeOverview(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, overview.TotalCapacity)
	assert.Equal(t, 0, overview.UtilizationPercentage)
	assert.Empty(t, overview.LowSpace)
}

func TestComputeOverviewItemBreakdown(t *testing.T) {
	store := boundarytest.NewFakeStore()
	id := store.SeedLocation(models.Location{Name: "A", Type: models.LocationCabinet, Capacity: 5, Utilized: 2})
	store.SeedRawCell(id, `{"x": 0, "y": 0}`, 1, "leather")
	store.SeedRawCell(id, `{"x": 1, "y": 0}`, 2, "leather")
	store.SeedRawCell(id, `{"x": 2, "y": 0}`, 3, "thread")

	agg := newTestAggregator(store, 5)

	// Breakdown only covers loaded grids, so pull the location's cells in
	// first the way a handler would.
	_, err := agg.cells.CellsFor(context.Background(), id)
	assert.NoError(t, err)

	overview, err := agg.ComputeOverview(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, overview.ItemBreakdown["leather"])
	assert.Equal(t, 1, overview.ItemBreakdown["thread"])
}

func TestUtilizationOf(t *testing.T) {
	store := boundarytest.NewFakeStore()
	full := store.SeedLocation(models.Location{Name: "A", Type: models.LocationRack, Capacity: 8, Utilized: 2})
	empty := store.SeedLocation(models.Location{Name: "B", Type: models.LocationRack, Capacity: 0, Utilized: 0})

	agg := newTestAggregator(store, 5)
	ctx := context.Background()

	assert.Equal(t, 25, agg.UtilizationOf(ctx, full))
	assert.Equal(t, 0, agg.UtilizationOf(ctx, empty))
	assert.Equal(t, 0, agg.UtilizationOf(ctx, 999))
}
