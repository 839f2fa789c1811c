package batch

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

func newTestCoordinator(store *boundarytest.FakeStore) *Coordinator {
	log := zap.NewNop()
	hub := notify.NewHub()
	cells := cellindex.NewIndex(store, hub, log)
	reg := registry.NewRegistry(store, cells, hub, log)
	return NewCoordinator(reg, log)
}

func TestCreateManyKeepsGoingPastFailures(t *testing.T) {
	c := newTestCoordinator(boundarytest.NewFakeStore())

	result := c.CreateMany(context.Background(), []models.Location{
		{Name: "A", Type: models.LocationCabinet, Capacity: 5},
		{Name: "", Type: models.LocationCabinet, Capacity: 5},
		{Name: "B", Type: "closet", Capacity: 5},
		{Name: "C", Type: models.LocationShelf, Capacity: 3},
	})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Results, 4)
	assert.True(t, result.Results[0].Success)
	assert.False(t, result.Results[1].Success)
	assert.NotEmpty(t, result.Results[1].Error)
	assert.False(t, result.Results[2].Success)
	assert.True(t, result.Results[3].Success)
}

func TestUpdateMany(t *testing.T) {
	store := boundarytest.NewFakeStore()
	a := store.SeedLocation(models.Location{Name: "A", Type: models.LocationCabinet, Capacity: 5})
	b := store.SeedLocation(models.Location{Name: "B", Type: models.LocationShelf, Capacity: 5})

	c := newTestCoordinator(store)

	name := "A renamed"
	capacity := 9
	result := c.UpdateMany(context.Background(), []UpdateItem{
		{ID: a, Patch: models.LocationPatch{Name: &name}},
		{ID: b, Patch: models.LocationPatch{Capacity: &capacity}},
		{ID: 404, Patch: models.LocationPatch{Name: &name}},
	})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)

	loc, _ := store.LocationByID(a)
	assert.Equal(t, "A renamed", loc.Name)
	loc, _ = store.LocationByID(b)
	assert.Equal(t, 9, loc.Capacity)
}

func TestDeleteManyReportsPerItem(t *testing.T) {
	store := boundarytest.NewFakeStore()
	ids := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, store.SeedLocation(models.Location{Name: "L", Type: models.LocationDrawer, Capacity: 2}))
	}
	// One id in the middle does not exist.
	ids[2] = 404

	c := newTestCoordinator(store)

	result := c.DeleteMany(context.Background(), ids)
	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Results, 5)
	assert.False(t, result.Results[2].Success)

	_, found := store.LocationByID(ids[0])
	assert.False(t, found)
}
