package registry

import (
	"context"
	"testing"

	"stockroom/internal/boundary/boundarytest"
	"stockroom/internal/cellindex"
	"stockroom/internal/notify"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRegistry(store *boundarytest.FakeStore) (*Registry, *cellindex.Index, *notify.Hub) {
	log := zap.NewNop()
	hub := notify.NewHub()
	cells := cellindex.NewIndex(store, hub, log)
	return NewRegistry(store, cells, hub, log), cells, hub
}

type recordingSubscriber struct {
	events []notify.Event
}

func (r *recordingSubscriber) Notify(e notify.Event) {
	r.events = append(r.events, e)
}

func TestCreateValidation(t *testing.T) {
	reg, _, _ := newTestRegistry(boundarytest.NewFakeStore())
	ctx := context.Background()

	cases := []struct {
		name  string
		loc   models.Location
		field string
	}{
		{"empty name", models.Location{Type: models.LocationCabinet, Capacity: 5}, "name"},
		{"bad type", models.Location{Name: "A", Type: "closet", Capacity: 5}, "type"},
		{"negative capacity", models.Location{Name: "A", Type: models.LocationShelf, Capacity: -1}, "capacity"},
		{"utilized over capacity", models.Location{Name: "A", Type: models.LocationShelf, Capacity: 2, Utilized: 3}, "utilized"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Create(ctx, tc.loc)
			var validation *custom_error.ValidationError
			assert.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.field, validation.Field)
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	reg, _, _ := newTestRegistry(boundarytest.NewFakeStore())

	loc, err := reg.Create(context.Background(), models.Location{Name: "Cabinet A", Type: models.LocationCabinet, Capacity: 10})
	assert.NoError(t, err)
	assert.NotZero(t, loc.ID)
	assert.Equal(t, "active", loc.Status)
	assert.Equal(t, 0, loc.Utilized)
	assert.False(t, loc.LastModified.IsZero())
}

func TestGetUsesCacheAfterCreate(t *testing.T) {
	store := boundarytest.NewFakeStore()
	reg, _, _ := newTestRegistry(store)
	ctx := context.Background()

	created, err := reg.Create(ctx, models.Location{Name: "Cabinet A", Type: models.LocationCabinet, Capacity: 10})
	assert.NoError(t, err)

	got, err := reg.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = reg.Get(ctx, 999)
	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	store := boundarytest.NewFakeStore()
	id := store.SeedLocation(models.Location{Name: "Cabinet A", Type: models.LocationCabinet, Capacity: 10, Utilized: 4})

	reg, _, _ := newTestRegistry(store)

	name := "Cabinet A1"
	loc, err := reg.Update(context.Background(), id, models.LocationPatch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Cabinet A1", loc.Name)
	assert.Equal(t, 10, loc.Capacity)
	assert.Equal(t, 4, loc.Utilized)

	bad := models.LocationType("closet")
	_, err = reg.Update(context.Background(), id, models.LocationPatch{Type: &bad})
	var validation *custom_error.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestDeleteCascadesCells(t *testing.T) {
	store := boundarytest.NewFakeStore()
	id := store.SeedLocation(models.Location{Name: "Cabinet A", Type: models.LocationCabinet, Capacity: 5, Utilized: 1})
	store.SeedRawCell(id, `{"x": 0, "y": 0}`, 42, "leather")

	reg, cells, _ := newTestRegistry(store)
	ctx := context.Background()

	// Load the grid so the cached copy has something to drop.
	loaded, err := cells.CellsFor(ctx, id)
	assert.NoError(t, err)
	assert.Len(t, loaded, 1)

	assert.NoError(t, reg.Delete(ctx, id))

	_, found := store.LocationByID(id)
	assert.False(t, found)
	assert.Equal(t, 0, store.CellCount(id))
	assert.Empty(t, cells.Breakdown())

	assert.ErrorAs(t, reg.Delete(ctx, id), new(*custom_error.NotFoundError))
}

func TestListFiltersAndPaginates(t *testing.T) {
	store := boundarytest.NewFakeStore()
	store.SeedLocation(models.Location{Name: "A", Type: models.LocationCabinet, Section: "front", Capacity: 10, Utilized: 9})
	store.SeedLocation(models.Location{Name: "B", Type: models.LocationShelf, Section: "back", Capacity: 10, Utilized: 1})
	store.SeedLocation(models.Location{Name: "C", Type: models.LocationCabinet, Section: "back", Capacity: 10, Utilized: 5})

	reg, _, _ := newTestRegistry(store)
	ctx := context.Background()

	page, err := reg.List(ctx, models.Pagination{}, models.LocationFilters{
		Types: []models.LocationType{models.LocationCabinet},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	min := 50
	page, err = reg.List(ctx, models.Pagination{}, models.LocationFilters{MinUtilization: &min})
	assert.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = reg.List(ctx, models.Pagination{Page: 2, PageSize: 2}, models.LocationFilters{})
	assert.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Data, 1)
}

func TestMutationsPublishEvents(t *testing.T) {
	store := boundarytest.NewFakeStore()
	reg, _, hub := newTestRegistry(store)
	sub := &recordingSubscriber{}
	hub.Subscribe(sub)

	ctx := context.Background()
	created, err := reg.Create(ctx, models.Location{Name: "A", Type: models.LocationShelf, Capacity: 3})
	assert.NoError(t, err)
	assert.NoError(t, reg.Delete(ctx, created.ID))

	assert.Len(t, sub.events, 2)
	assert.Equal(t, notify.LocationUpserted, sub.events[0].Kind)
	assert.Equal(t, notify.LocationDeleted, sub.events[1].Kind)
	assert.Equal(t, created.ID, sub.events[1].StorageID)
}
