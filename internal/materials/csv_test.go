package materials

import (
	"context"
	"strings"
	"testing"

	"stockroom/internal/boundary/boundarytest"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestImportFromCSVCollectsRowErrors(t *testing.T) {
	store := boundarytest.NewFakeStore()
	svc := NewService(store, zap.NewNop())

	input := strings.Join([]string{
		"name,category,storage_id,quantity,unit",
		"Veg-tan leather,leather,1,4,sqft",
		",thread,1,2,spool",
		"Waxed thread,thread,1,-2,spool",
		"Brass rivets,hardware,abc,10,pcs",
		"Edge paint,supplies,,1,bottle",
	}, "\n")

	result, err := svc.ImportFromCSV(context.Background(), strings.NewReader(input))
	assert.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "name")
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "quantity")
	assert.Equal(t, 5, result.Errors[2].Row)
	assert.Contains(t, result.Errors[2].Message, "storage_id")
}

func TestImportFromCSVToleratesColumnOrder(t *testing.T) {
	store := boundarytest.NewFakeStore()
	svc := NewService(store, zap.NewNop())

	input := "quantity,name\n7,Snaps\n"

	result, err := svc.ImportFromCSV(context.Background(), strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)

	page, err := svc.List(context.Background(), models.Pagination{}, models.MaterialFilters{})
	assert.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "Snaps", page.Data[0].Name)
	assert.Equal(t, 7, page.Data[0].Quantity)
	assert.Nil(t, page.Data[0].StorageID)
}

func TestImportFromCSVRejectsMissingNameColumn(t *testing.T) {
	svc := NewService(boundarytest.NewFakeStore(), zap.NewNop())

	_, err := svc.ImportFromCSV(context.Background(), strings.NewReader("category,quantity\nleather,1\n"))
	var validation *custom_error.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestImportFromCSVEmptyFile(t *testing.T) {
	svc := NewService(boundarytest.NewFakeStore(), zap.NewNop())

	_, err := svc.ImportFromCSV(context.Background(), strings.NewReader(""))
	var validation *custom_error.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestExportToCSVRoundTrip(t *testing.T) {
	store := boundarytest.NewFakeStore()
	svc := NewService(store, zap.NewNop())

	input := "name,category,storage_id,quantity,unit\nVeg-tan leather,leather,3,4,sqft\nBrass rivets,hardware,,10,pcs\n"
	_, err := svc.ImportFromCSV(context.Background(), strings.NewReader(input))
	assert.NoError(t, err)

	blob, err := svc.ExportToCSV(context.Background(), models.MaterialFilters{})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(blob)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "name,category,storage_id,quantity,unit", lines[0])
	assert.Contains(t, lines[1], "Veg-tan leather,leather,3,4,sqft")
	assert.Contains(t, lines[2], "Brass rivets,hardware,,10,pcs")
}

func TestExportToCSVEmptyStore(t *testing.T) {
	svc := NewService(boundarytest.NewFakeStore(), zap.NewNop())

	blob, err := svc.ExportToCSV(context.Background(), models.MaterialFilters{})
	assert.NoError(t, err)
	assert.Equal(t, "name,category,storage_id,quantity,unit\n", string(blob))
}
