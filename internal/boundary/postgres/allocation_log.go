package postgres

import (
	"context"
	"encoding/json"
	"time"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

func (s *Store) AppendAllocationLog(ctx context.Context, entry models.AllocationLogEntry) error {
	data := []byte("{}")
	if entry.Data != nil {
		encoded, err := json.Marshal(entry.Data)
		if err == nil {
			data = encoded
		}
	}

	query := s.repo.GoquDBWrapper.Insert("allocation_log").
		Rows(goqu.Record{
			"action":          entry.Action,
			"item_id":         entry.ItemID,
			"from_storage_id": entry.FromStorageID,
			"to_storage_id":   entry.ToStorageID,
			"actor":           entry.Actor,
			"data":            data,
			"created_at":      time.Now().UTC(),
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return custom_error.WrapBoundaryError("allocation_log.append", err)
	}

	return nil
}

func (s *Store) ListAllocationLog(ctx context.Context, storageID int) ([]models.AllocationLogEntry, error) {
	query := s.repo.GoquDBWrapper.From("allocation_log").
		Select("id", "action", "item_id", "from_storage_id", "to_storage_id", "actor", "data", "created_at").
		Where(goqu.Or(
			goqu.C("from_storage_id").Eq(storageID),
			goqu.C("to_storage_id").Eq(storageID),
		)).
		Order(goqu.I("created_at").Desc())

	var entries []models.AllocationLogEntry
	if err := query.Executor().ScanStructsContext(ctx, &entries); err != nil {
		return nil, custom_error.WrapBoundaryError("allocation_log.list", err)
	}

	for i := range entries {
		entries[i].LoadFromDB()
	}

	return entries, nil
}
