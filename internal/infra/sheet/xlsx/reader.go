package xlsx

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
)

// Reader читает диапазоны из книги .xlsx
// Файл открывается заново на каждое чтение, поэтому правки книги видны следующему запуску отчёта.
type Reader struct {
	path string
}

// NewReader создает reader книги по пути path
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadRange читает диапазон rng вкладки tab
func (r *Reader) ReadRange(ctx context.Context, tab string, rng sheet.Range) ([][]domain.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", sheet.ErrReadDocument, r.path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(tab)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", sheet.ErrTabNotFound, tab, r.path)
	}

	rows, err := f.GetRows(tab, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read tab %q: %v", sheet.ErrReadDocument, tab, err)
	}

	collector := sheet.NewCollector(rng)
	for i, line := range rows {
		rowNum := i + 1
		if rowNum < rng.FromRow {
			continue
		}
		if !rng.OpenEnded() && rowNum > rng.ToRow {
			break
		}
		for j, raw := range line {
			colNum := j + 1
			if !rng.Contains(rowNum, colNum) || strings.TrimSpace(raw) == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(colNum, rowNum)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", sheet.ErrReadDocument, err)
			}
			cellType, err := f.GetCellType(tab, name)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s!%s: %v", sheet.ErrReadDocument, tab, name, err)
			}
			collector.Put(rowNum, colNum, toCell(raw, cellType))
		}
	}

	return collector.Matrix(), nil
}

// isoDateLayouts форматы ячеек с типом "d" (ISO 8601)
var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"15:04:05",
}

// toCell преобразует сырое значение ячейки; строки остаются текстом,
// ISO-даты становятся Time, числа (включая даты и время, хранящиеся как серийные номера) становятся Number
func toCell(raw string, cellType excelize.CellType) domain.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return domain.TextCell(raw)
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return domain.TimeCell(t)
		}
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return domain.NumberCell(v)
	}
	return domain.TextCell(raw)
}

func parseISODate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
