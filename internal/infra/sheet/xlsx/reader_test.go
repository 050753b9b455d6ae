package xlsx

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Settings")
	require.NoError(t, err)

	values := map[string]interface{}{
		"A1":  "Riverside Padel",
		"B1":  4,
		"A2":  "Monday",
		"B2":  "09:00-17:00",
		"A4":  "Saturday",
		"B4":  "08:00-24:00",
		"B20": "Sunday",
		"B21": 0.375,
		"B22": 0.875,
	}
	for cell, v := range values {
		require.NoError(t, f.SetCellValue("Settings", cell, v))
	}

	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReader_ReadRange(t *testing.T) {
	r := NewReader(writeWorkbook(t))

	cells, err := r.ReadRange(context.Background(), "Settings", sheet.MustParseRange("A1:B1"))
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, domain.TextCell("Riverside Padel"), cells[0][0])
	assert.Equal(t, domain.NumberCell(4), cells[0][1])

	list, err := r.ReadRange(context.Background(), "Settings", sheet.MustParseRange("A2:B18"))
	require.NoError(t, err)
	require.Len(t, list, 17)
	assert.Equal(t, "Monday", list[0][0].String())
	assert.Equal(t, "09:00-17:00", list[0][1].String())
	assert.True(t, list[1][0].IsEmpty())
	assert.Equal(t, "08:00-24:00", list[2][1].String())

	grid, err := r.ReadRange(context.Background(), "Settings", sheet.MustParseRange("A20:H22"))
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, "Sunday", grid[0][1].String())
	assert.Equal(t, domain.NumberCell(0.375), grid[1][1])
	assert.Equal(t, 21, domain.ParseHour(grid[2][1]))
}

func TestReader_OpenEndedRange(t *testing.T) {
	r := NewReader(writeWorkbook(t))

	cells, err := r.ReadRange(context.Background(), "Settings", sheet.MustParseRange("A2:B"))
	require.NoError(t, err)
	// последняя заполненная строка - 22
	assert.Len(t, cells, 21)
}

func TestReader_Errors(t *testing.T) {
	r := NewReader(writeWorkbook(t))

	_, err := r.ReadRange(context.Background(), "Bookings", sheet.MustParseRange("A2:D"))
	assert.ErrorIs(t, err, sheet.ErrTabNotFound)

	missing := NewReader(filepath.Join(t.TempDir(), "missing.xlsx"))
	_, err = missing.ReadRange(context.Background(), "Settings", sheet.MustParseRange("A1"))
	assert.ErrorIs(t, err, sheet.ErrReadDocument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ReadRange(ctx, "Settings", sheet.MustParseRange("A1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToCell_DateTyped(t *testing.T) {
	c := toCell("1899-12-30T09:00:00", excelize.CellTypeDate)
	require.Equal(t, domain.CellTime, c.Kind)
	assert.Equal(t, 9, domain.ParseHour(c))

	c = toCell("2025-02-03T00:00:00Z", excelize.CellTypeDate)
	d, ok := domain.ParseDate(c)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), d)

	c = toCell("1899-12-30T21:30:00.000", excelize.CellTypeDate)
	assert.Equal(t, 21, domain.ParseHour(c))

	assert.Equal(t, domain.TextCell("not a date"), toCell("not a date", excelize.CellTypeDate))
	assert.Equal(t, domain.NumberCell(0.375), toCell("0.375", excelize.CellTypeUnset))
	assert.Equal(t, domain.TextCell("09:00"), toCell("09:00", excelize.CellTypeSharedString))
}
