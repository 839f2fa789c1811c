package allocationlog

import (
	"context"

	"stockroom/internal/boundary"
	"stockroom/pkg/models"

	"go.uber.org/zap"
)

// Recorder writes the allocation audit trail. Recording is best-effort: a
// failed append is logged and swallowed so it can never fail the operation
// it describes.
type Recorder struct {
	store boundary.Store
	log   *zap.Logger
}

func NewRecorder(store boundary.Store, log *zap.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

func (r *Recorder) Record(ctx context.Context, action string, itemID int, fromID, toID *int, actor string, data map[string]interface{}) {
	entry := models.AllocationLogEntry{
		Action:        action,
		ItemID:        itemID,
		FromStorageID: fromID,
		ToStorageID:   toID,
		Actor:         actor,
		Data:          data,
	}

	if err := r.store.AppendAllocationLog(ctx, entry); err != nil {
		r.log.Warn("unable to create allocation log entry",
			zap.String("action", action),
			zap.Int("item_id", itemID),
			zap.Error(err))
		return
	}
}

func (r *Recorder) Entries(ctx context.Context, storageID int) ([]models.AllocationLogEntry, error) {
	return r.store.ListAllocationLog(ctx, storageID)
}
