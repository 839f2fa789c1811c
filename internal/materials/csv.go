package materials

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"go.uber.org/zap"
)

// csvHeader is the expected column order for imports and the one exports
// produce.
var csvHeader = []string{"name", "category", "storage_id", "quantity", "unit"}

// ImportFromCSV ingests materials row by row. A bad row is recorded and
// skipped; the import never aborts for one row.
func (s *Service) ImportFromCSV(ctx context.Context, file io.Reader) (*models.ImportResult, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, custom_error.NewValidation("file", "empty or unreadable CSV")
	}
	columns := headerIndex(header)
	if _, ok := columns["name"]; !ok {
		return nil, custom_error.NewValidation("file", "missing required column: name")
	}

	result := &models.ImportResult{}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		material, err := parseRow(record, columns)
		if err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		if err := s.store.InsertMaterial(ctx, material); err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{Row: row, Message: err.Error()})
			continue
		}
		result.Imported++
	}

	if len(result.Errors) > 0 {
		s.log.Warn("CSV import finished with rejected rows",
			zap.Int("imported", result.Imported),
			zap.Int("rejected", len(result.Errors)))
	}

	return result, nil
}

// ExportToCSV writes the filtered materials as a downloadable blob, paging
// through the boundary.
func (s *Service) ExportToCSV(ctx context.Context, f models.MaterialFilters) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	page := 1
	for {
		materials, err := s.store.ListMaterials(ctx, models.Pagination{Page: page, PageSize: 500}, f)
		if err != nil {
			return nil, err
		}

		for _, m := range materials.Data {
			storageID := ""
			if m.StorageID != nil {
				storageID = strconv.Itoa(*m.StorageID)
			}
			record := []string{m.Name, m.Category, storageID, strconv.Itoa(m.Quantity), m.Unit}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}

		if page*materials.PageSize >= materials.Total || len(materials.Data) == 0 {
			break
		}
		page++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseRow(record []string, columns map[string]int) (*models.Material, error) {
	material := &models.Material{
		Name:     field(record, columns, "name"),
		Category: field(record, columns, "category"),
		Unit:     field(record, columns, "unit"),
	}
	if material.Name == "" {
		return nil, custom_error.NewValidation("name", "must not be empty")
	}

	if raw := field(record, columns, "quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil || quantity < 0 {
			return nil, custom_error.NewValidation("quantity", "must be a non-negative integer")
		}
		material.Quantity = quantity
	}

	if raw := field(record, columns, "storage_id"); raw != "" {
		storageID, err := strconv.Atoi(raw)
		if err != nil {
			return nil, custom_error.NewValidation("storage_id", "must be an integer")
		}
		material.StorageID = &storageID
	}

	return material, nil
}
