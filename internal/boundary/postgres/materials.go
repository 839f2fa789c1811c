package postgres

import (
	"context"
	"time"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var materialSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"category":   "category",
	"quantity":   "quantity",
	"created_at": "created_at",
}

func (s *Store) ListMaterials(ctx context.Context, p models.Pagination, f models.MaterialFilters) (*models.MaterialPage, error) {
	p.Normalize()

	query := s.repo.GoquDBWrapper.From("materials").
		Select("id", "name", "category", "storage_id", "quantity", "unit", "created_at")
	query = applyMaterialFilters(query, f)

	countQuery := s.repo.GoquDBWrapper.From("materials").Select(goqu.COUNT("id"))
	countQuery = applyMaterialFilters(countQuery, f)

	var total int
	if _, err := countQuery.Executor().ScanValContext(ctx, &total); err != nil {
		return nil, custom_error.WrapBoundaryError("materials.count", err)
	}

	sortCol, ok := materialSortColumns[p.SortBy]
	if !ok {
		sortCol = "id"
	}
	order := goqu.I(sortCol).Asc()
	if p.SortDir == models.SortDesc {
		order = goqu.I(sortCol).Desc()
	}

	var materials []models.Material
	if err := query.Order(order).
		Limit(uint(p.PageSize)).
		Offset(uint((p.Page - 1) * p.PageSize)).
		Executor().ScanStructsContext(ctx, &materials); err != nil {
		return nil, custom_error.WrapBoundaryError("materials.list", err)
	}

	return &models.MaterialPage{
		Data:     materials,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

func applyMaterialFilters(query *goqu.SelectDataset, f models.MaterialFilters) *goqu.SelectDataset {
	if len(f.Categories) > 0 {
		query = query.Where(goqu.C("category").In(f.Categories))
	}
	if f.StorageID != nil {
		query = query.Where(goqu.C("storage_id").Eq(*f.StorageID))
	}
	if f.Search != "" {
		query = query.Where(goqu.Or(
			goqu.C("name").ILike("%"+f.Search+"%"),
			goqu.C("category").ILike("%"+f.Search+"%"),
		))
	}
	return query
}

func (s *Store) InsertMaterial(ctx context.Context, m *models.Material) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query := s.repo.GoquDBWrapper.Insert("materials").
		Rows(goqu.Record{
			"name":       m.Name,
			"category":   m.Category,
			"storage_id": m.StorageID,
			"quantity":   m.Quantity,
			"unit":       m.Unit,
			"created_at": m.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanValContext(ctx, &m.ID); err != nil {
		if pqErr, ok := asPqError(err); ok {
			return custom_error.WrapDBError("material references a missing location", string(pqErr.Code))
		}
		return custom_error.WrapBoundaryError("materials.insert", err)
	}

	return nil
}
