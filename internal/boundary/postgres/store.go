package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/boundary"
	"stockroom/internal/repository"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// Store implements the persistence boundary on Postgres through the shared
// goqu wrapper.
type Store struct {
	repo *repository.Repository
}

var _ boundary.Store = (*Store)(nil)

func NewStore(r *repository.Repository) *Store {
	return &Store{repo: r}
}

// sortColumns whitelists sortable location columns; anything else falls back
// to the primary key.
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"type":          "type",
	"section":       "section",
	"capacity":      "capacity",
	"utilized":      "utilized",
	"status":        "status",
	"last_modified": "last_modified",
}

// utilizationExpr computes the rounded percentage in SQL, zero for
// zero-capacity rows.
var utilizationExpr = goqu.L("CASE WHEN capacity > 0 THEN ROUND(utilized * 100.0 / capacity) ELSE 0 END")

func (s *Store) ListLocations(ctx context.Context, p models.Pagination, f models.LocationFilters) (*models.LocationPage, error) {
	p.Normalize()

	query := s.repo.GoquDBWrapper.From("locations").
		Select("id", "name", "type", "section", "capacity", "utilized", "status", "last_modified")
	query = applyLocationFilters(query, f)

	countQuery := s.repo.GoquDBWrapper.From("locations").Select(goqu.COUNT("id"))
	countQuery = applyLocationFilters(countQuery, f)

	var total int
	if _, err := countQuery.Executor().ScanValContext(ctx, &total); err != nil {
		return nil, custom_error.WrapBoundaryError("locations.count", err)
	}

	sortCol, ok := sortColumns[p.SortBy]
	if !ok {
		sortCol = "id"
	}
	order := goqu.I(sortCol).Asc()
	if p.SortDir == models.SortDesc {
		order = goqu.I(sortCol).Desc()
	}

	query = query.Order(order).
		Limit(uint(p.PageSize)).
		Offset(uint((p.Page - 1) * p.PageSize))

	var locations []models.Location
	if err := query.Executor().ScanStructsContext(ctx, &locations); err != nil {
		return nil, custom_error.WrapBoundaryError("locations.list", err)
	}

	return &models.LocationPage{
		Data:     locations,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

func applyLocationFilters(query *goqu.SelectDataset, f models.LocationFilters) *goqu.SelectDataset {
	if len(f.Types) > 0 {
		query = query.Where(goqu.C("type").In(f.Types))
	}
	if len(f.Sections) > 0 {
		query = query.Where(goqu.C("section").In(f.Sections))
	}
	if len(f.Statuses) > 0 {
		query = query.Where(goqu.C("status").In(f.Statuses))
	}
	if f.MinUtilization != nil {
		query = query.Where(goqu.L("? >= ?", utilizationExpr, *f.MinUtilization))
	}
	if f.MaxUtilization != nil {
		query = query.Where(goqu.L("? <= ?", utilizationExpr, *f.MaxUtilization))
	}
	return query
}

func (s *Store) GetLocation(ctx context.Context, id int) (*models.Location, error) {
	query := s.repo.GoquDBWrapper.From("locations").
		Select("id", "name", "type", "section", "capacity", "utilized", "status", "last_modified").
		Where(goqu.Ex{"id": id})

	var loc models.Location
	found, err := query.Executor().ScanStructContext(ctx, &loc)
	if err != nil {
		return nil, custom_error.WrapBoundaryError("locations.get", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("location", id)
	}

	return &loc, nil
}

func (s *Store) InsertLocation(ctx context.Context, loc *models.Location) error {
	loc.LastModified = time.Now().UTC()

	query := s.repo.GoquDBWrapper.Insert("locations").
		Rows(goqu.Record{
			"name":          loc.Name,
			"type":          loc.Type,
			"section":       loc.Section,
			"capacity":      loc.Capacity,
			"utilized":      loc.Utilized,
			"status":        loc.Status,
			"last_modified": loc.LastModified,
		}).
		Returning("id")

	if _, err := query.Executor().ScanValContext(ctx, &loc.ID); err != nil {
		if pqErr, ok := asPqError(err); ok {
			return custom_error.WrapDBError("duplicate location name", string(pqErr.Code))
		}
		return custom_error.WrapBoundaryError("locations.insert", err)
	}

	return nil
}

func (s *Store) UpdateLocation(ctx context.Context, id int, patch models.LocationPatch) (*models.Location, error) {
	updates := make(map[string]interface{})

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.Section != nil {
		updates["section"] = *patch.Section
	}
	if patch.Capacity != nil {
		updates["capacity"] = *patch.Capacity
	}
	if patch.Utilized != nil {
		updates["utilized"] = *patch.Utilized
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if len(updates) == 0 {
		return nil, custom_error.NewValidation("", "no fields to update")
	}
	updates["last_modified"] = time.Now().UTC()

	query := s.repo.GoquDBWrapper.
		Update("locations").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "type", "section", "capacity", "utilized", "status", "last_modified")

	var loc models.Location
	found, err := query.Executor().ScanStructContext(ctx, &loc)
	if err != nil {
		return nil, custom_error.WrapBoundaryError("locations.update", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("location", id)
	}

	return &loc, nil
}

func (s *Store) DeleteLocation(ctx context.Context, id int) error {
	return repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		// Cells first so no record keeps pointing at a dead location.
		if _, err := tx.Delete("cells").
			Where(goqu.Ex{"storage_id": id}).
			Executor().ExecContext(ctx); err != nil {
			return custom_error.WrapBoundaryError("cells.cascade_delete", err)
		}

		result, err := tx.Delete("locations").
			Where(goqu.Ex{"id": id}).
			Executor().ExecContext(ctx)
		if err != nil {
			if pqErr, ok := asPqError(err); ok {
				return custom_error.WrapDBError("location is still referenced", string(pqErr.Code))
			}
			return custom_error.WrapBoundaryError("locations.delete", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not retrieve rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return custom_error.NewNotFound("location", id)
		}

		return nil
	})
}

func asPqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}
