package allocation

import (
	"context"
	"sort"
	"sync"

	"stockroom/internal/allocationlog"
	"stockroom/internal/cellindex"
	"stockroom/internal/metrics"
	"stockroom/internal/registry"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine coordinates cell occupancy and the per-location utilization counter.
// Every mutation against a location runs under that location's lock, so
// concurrent assigns/removes/moves on the same storage are strictly ordered.
type Engine struct {
	registry *registry.Registry
	cells    *cellindex.Index
	moves    MoveStore
	audit    *allocationlog.Recorder
	log      *zap.Logger

	lockMu sync.Mutex
	locks  map[int]*sync.Mutex
}

func NewEngine(reg *registry.Registry, cells *cellindex.Index, moves MoveStore, audit *allocationlog.Recorder, log *zap.Logger) *Engine {
	return &Engine{
		registry: reg,
		cells:    cells,
		moves:    moves,
		audit:    audit,
		log:      log,
		locks:    make(map[int]*sync.Mutex),
	}
}

func (e *Engine) lockFor(storageID int) *sync.Mutex {
	e.lockMu.Lock()
	defer e.lockMu.Unlock()

	lock, ok := e.locks[storageID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[storageID] = lock
	}
	return lock
}

// lockAll acquires the locks for every involved location in ascending id
// order so two moves crossing the same pair cannot deadlock.
func (e *Engine) lockAll(storageIDs ...int) func() {
	ids := append([]int(nil), storageIDs...)
	sort.Ints(ids)

	var acquired []*sync.Mutex
	var last *sync.Mutex
	for _, id := range ids {
		lock := e.lockFor(id)
		if lock == last {
			continue
		}
		lock.Lock()
		acquired = append(acquired, lock)
		last = lock
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}

// Assign places an item into the exact cell and bumps the location's
// utilization. The quantity argument is accepted for callers that track
// batch sizes, but the counter moves by exactly one per assignment; see the
// allocation notes in DESIGN.md before changing that.
func (e *Engine) Assign(ctx context.Context, itemID, storageID int, pos models.Position, quantity int, itemType, actor string) (bool, error) {
	_ = quantity

	unlock := e.lockAll(storageID)
	defer unlock()

	if err := e.doAssign(ctx, itemID, storageID, pos, itemType); err != nil {
		metrics.AssignTotal.WithLabelValues("error").Inc()
		return false, err
	}

	metrics.AssignTotal.WithLabelValues("ok").Inc()
	e.audit.Record(ctx, "assign", itemID, nil, &storageID, actor, map[string]interface{}{
		"position": pos,
	})

	return true, nil
}

// Remove takes the item's cell out of the location and decrements
// utilization, clamped at zero.
func (e *Engine) Remove(ctx context.Context, itemID, storageID int, actor string) (bool, error) {
	unlock := e.lockAll(storageID)
	defer unlock()

	if _, err := e.doRemove(ctx, itemID, storageID); err != nil {
		metrics.RemoveTotal.WithLabelValues("error").Inc()
		return false, err
	}

	metrics.RemoveTotal.WithLabelValues("ok").Inc()
	e.audit.Record(ctx, "remove", itemID, &storageID, nil, actor, nil)

	return true, nil
}

// Move relocates an item between two locations. The two legs are independent
// boundary calls; MoveItem carries the state machine that keeps a retry from
// applying either leg twice.
func (e *Engine) Move(ctx context.Context, itemID, fromStorageID, toStorageID int, newPos models.Position, actor string) (bool, error) {
	return e.MoveItem(ctx, models.MoveRequest{
		ItemID:        itemID,
		FromStorageID: &fromStorageID,
		ToStorageID:   &toStorageID,
		ToPosition:    &newPos,
		RequestedBy:   actor,
	})
}

// MoveItem is the generalized entry point. A nil From skips the remove leg
// (first-time placement); a nil To skips the assign leg (pure removal).
func (e *Engine) MoveItem(ctx context.Context, req models.MoveRequest) (bool, error) {
	if req.FromStorageID == nil && req.ToStorageID == nil {
		return false, custom_error.NewValidation("move", "needs a source or a destination")
	}
	if req.ToStorageID != nil && req.ToPosition == nil {
		return false, custom_error.NewValidation("to_position", "required when a destination is set")
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	state, err := e.moves.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if state == nil {
		state = &models.MoveState{
			Key:    key,
			ItemID: req.ItemID,
			FromID: req.FromStorageID,
			ToID:   req.ToStorageID,
			Phase:  models.MovePending,
		}
		if err := e.moves.Put(ctx, *state); err != nil {
			return false, err
		}
	} else if state.Phase == models.MoveAssigned {
		// Already completed, the retry is a no-op.
		return true, nil
	}

	var ids []int
	if req.FromStorageID != nil {
		ids = append(ids, *req.FromStorageID)
	}
	if req.ToStorageID != nil {
		ids = append(ids, *req.ToStorageID)
	}
	unlock := e.lockAll(ids...)
	defer unlock()

	// Remove leg. A state already past pending means a previous attempt got
	// this far; do not decrement the source twice.
	if req.FromStorageID != nil && state.Phase == models.MovePending {
		removed, err := e.doRemove(ctx, req.ItemID, *req.FromStorageID)
		if err != nil {
			metrics.MoveTotal.WithLabelValues("error").Inc()
			return false, err
		}
		state.Phase = models.MoveRemoved
		state.ItemType = removed.ItemType
		if err := e.moves.Put(ctx, *state); err != nil {
			return false, err
		}
	}

	// Assign leg.
	if req.ToStorageID != nil {
		if err := e.doAssign(ctx, req.ItemID, *req.ToStorageID, *req.ToPosition, state.ItemType); err != nil {
			if req.FromStorageID != nil {
				// The source removal stands and the item now sits nowhere.
				state.Phase = models.MoveFailed
				state.Error = err.Error()
				if putErr := e.moves.Put(ctx, *state); putErr != nil {
					e.log.Error("failed to record move failure", zap.String("key", key), zap.Error(putErr))
				}

				metrics.MoveTotal.WithLabelValues("inconsistent").Inc()
				metrics.MoveInconsistentTotal.Inc()
				e.audit.Record(ctx, "move_failed", req.ItemID, req.FromStorageID, req.ToStorageID, req.RequestedBy, map[string]interface{}{
					"move_key": key,
					"error":    err.Error(),
				})

				return false, &custom_error.InconsistentStateError{
					MoveKey: key,
					ItemID:  req.ItemID,
					FromID:  req.FromStorageID,
					ToID:    req.ToStorageID,
					Err:     err,
				}
			}

			metrics.MoveTotal.WithLabelValues("error").Inc()
			return false, err
		}
	}

	state.Phase = models.MoveAssigned
	state.Error = ""
	if err := e.moves.Put(ctx, *state); err != nil {
		e.log.Error("failed to record move completion", zap.String("key", key), zap.Error(err))
	}

	metrics.MoveTotal.WithLabelValues("ok").Inc()
	e.audit.Record(ctx, "move", req.ItemID, req.FromStorageID, req.ToStorageID, req.RequestedBy, map[string]interface{}{
		"move_key": key,
	})

	return true, nil
}

// MoveStatus returns the recorded state of a move so a caller hitting
// InconsistentState can inspect and act on it.
func (e *Engine) MoveStatus(ctx context.Context, key string) (*models.MoveState, error) {
	state, err := e.moves.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, custom_error.NewNotFound("move", key)
	}
	return state, nil
}

// ItemsIn lists the cells of a location through the cache.
func (e *Engine) ItemsIn(ctx context.Context, storageID int) ([]models.Cell, error) {
	return e.cells.CellsFor(ctx, storageID)
}

func (e *Engine) doAssign(ctx context.Context, itemID, storageID int, pos models.Position, itemType string) error {
	loc, err := e.registry.Get(ctx, storageID)
	if err != nil {
		return err
	}

	wasOccupied, err := e.cells.Assign(ctx, itemID, storageID, pos, itemType)
	if err != nil {
		return err
	}
	if wasOccupied {
		// Overwrite of an occupied coordinate: the occupant changed but the
		// occupied-cell count did not, so the counter stays put.
		metrics.CellOverwriteTotal.Inc()
		return nil
	}

	utilized := loc.Utilized + 1
	if utilized > loc.Capacity {
		utilized = loc.Capacity
	}

	_, err = e.registry.Update(ctx, storageID, models.LocationPatch{Utilized: &utilized})
	return err
}

func (e *Engine) doRemove(ctx context.Context, itemID, storageID int) (*models.Cell, error) {
	loc, err := e.registry.Get(ctx, storageID)
	if err != nil {
		return nil, err
	}

	removed, err := e.cells.Remove(ctx, itemID, storageID)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return nil, custom_error.NewNotFound("cell", itemID)
	}

	utilized := loc.Utilized - 1
	if utilized < 0 {
		utilized = 0
	}

	if _, err := e.registry.Update(ctx, storageID, models.LocationPatch{Utilized: &utilized}); err != nil {
		return nil, err
	}

	return removed, nil
}
