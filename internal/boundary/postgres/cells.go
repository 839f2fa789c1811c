package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"stockroom/internal/repository"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

func (s *Store) GetCells(ctx context.Context, storageID int) ([]models.CellRecord, error) {
	query := s.repo.GoquDBWrapper.From("cells").
		Select("storage_id", "position", "occupied", "item_id", "item_type").
		Where(goqu.Ex{"storage_id": storageID})

	var cells []models.CellRecord
	if err := query.Executor().ScanStructsContext(ctx, &cells); err != nil {
		return nil, custom_error.WrapBoundaryError("cells.list", err)
	}

	return cells, nil
}

// UpsertCell writes the cell at its exact coordinate; whatever occupied that
// coordinate before is replaced.
func (s *Store) UpsertCell(ctx context.Context, cell models.Cell) error {
	position, err := json.Marshal(cell.Position)
	if err != nil {
		return fmt.Errorf("failed to encode cell position: %w", err)
	}

	return repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("cells").
			Where(goqu.Ex{
				"storage_id": cell.StorageID,
				"pos_x":      cell.Position.X,
				"pos_y":      cell.Position.Y,
			}).
			Executor().ExecContext(ctx); err != nil {
			return custom_error.WrapBoundaryError("cells.replace", err)
		}

		query := tx.Insert("cells").
			Rows(goqu.Record{
				"storage_id": cell.StorageID,
				"position":   position,
				"pos_x":      cell.Position.X,
				"pos_y":      cell.Position.Y,
				"occupied":   cell.Occupied,
				"item_id":    cell.ItemID,
				"item_type":  cell.ItemType,
			})

		if _, err := query.Executor().ExecContext(ctx); err != nil {
			if pqErr, ok := asPqError(err); ok {
				return custom_error.WrapDBError("cell references a missing location", string(pqErr.Code))
			}
			return custom_error.WrapBoundaryError("cells.upsert", err)
		}

		return nil
	})
}

// DeleteCellByItem removes at most one row matching the item within the
// location. A double-assigned item keeps its other rows; that matches how
// removal has always behaved.
func (s *Store) DeleteCellByItem(ctx context.Context, storageID, itemID int) (bool, error) {
	result, err := s.repo.GoquDBWrapper.Delete("cells").
		Where(goqu.L("ctid IN (SELECT ctid FROM cells WHERE storage_id = ? AND item_id = ? LIMIT 1)", storageID, itemID)).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, custom_error.WrapBoundaryError("cells.delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not retrieve rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
