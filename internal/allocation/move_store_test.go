package allocation

import (
	"context"
	"testing"
	"time"

	"stockroom/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestMemoryMoveStorePutGet(t *testing.T) {
	store := NewMemoryMoveStore(time.Hour)
	ctx := context.Background()

	state, err := store.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, state)

	from, to := 1, 2
	err = store.Put(ctx, models.MoveState{
		Key:    "move-1",
		ItemID: 7,
		FromID: &from,
		ToID:   &to,
		Phase:  models.MovePending,
	})
	assert.NoError(t, err)

	state, err = store.Get(ctx, "move-1")
	assert.NoError(t, err)
	assert.NotNil(t, state)
	assert.Equal(t, 7, state.ItemID)
	assert.Equal(t, models.MovePending, state.Phase)
	assert.False(t, state.UpdatedAt.IsZero())
}

func TestMemoryMoveStoreOverwritesPhase(t *testing.T) {
	store := NewMemoryMoveStore(time.Hour)
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, models.MoveState{Key: "move-1", Phase: models.MovePending}))
	assert.NoError(t, store.Put(ctx, models.MoveState{Key: "move-1", Phase: models.MoveRemoved, ItemType: "leather"}))

	state, err := store.Get(ctx, "move-1")
	assert.NoError(t, err)
	assert.Equal(t, models.MoveRemoved, state.Phase)
	assert.Equal(t, "leather", state.ItemType)
}

func TestMemoryMoveStoreReturnsCopy(t *testing.T) {
	store := NewMemoryMoveStore(time.Hour)
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, models.MoveState{Key: "move-1", Phase: models.MovePending}))

	state, _ := store.Get(ctx, "move-1")
	state.Phase = models.MoveFailed

	again, _ := store.Get(ctx, "move-1")
	assert.Equal(t, models.MovePending, again.Phase)
}
