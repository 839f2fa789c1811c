package boundary

import (
	"context"

	"stockroom/pkg/models"
)

// Store is the persistence boundary the allocation engine is layered on.
// Every call crosses a network hop and may fail or time out; callers treat
// failures as retryable NetworkError unless a typed error says otherwise.
type Store interface {
	ListLocations(ctx context.Context, p models.Pagination, f models.LocationFilters) (*models.LocationPage, error)
	GetLocation(ctx context.Context, id int) (*models.Location, error)
	InsertLocation(ctx context.Context, loc *models.Location) error
	UpdateLocation(ctx context.Context, id int, patch models.LocationPatch) (*models.Location, error)
	// DeleteLocation cascades: all cells of the location go with it.
	DeleteLocation(ctx context.Context, id int) error

	// GetCells returns rows with the position still in its raw encoding;
	// normalization happens once, at cell index ingestion.
	GetCells(ctx context.Context, storageID int) ([]models.CellRecord, error)
	UpsertCell(ctx context.Context, cell models.Cell) error
	DeleteCellByItem(ctx context.Context, storageID, itemID int) (bool, error)

	ListMaterials(ctx context.Context, p models.Pagination, f models.MaterialFilters) (*models.MaterialPage, error)
	InsertMaterial(ctx context.Context, m *models.Material) error

	AppendAllocationLog(ctx context.Context, entry models.AllocationLogEntry) error
	ListAllocationLog(ctx context.Context, storageID int) ([]models.AllocationLogEntry, error)
}
