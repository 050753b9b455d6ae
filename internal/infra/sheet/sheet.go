package sheet

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
)

// Reader интерфейс чтения диапазона ячеек из вкладки документа
// Возвращаемая матрица прямоугольная: отсутствующие ячейки заполняются domain.CellEmpty.
// Для открытого диапазона ("A2:D") строки читаются до последней непустой.
type Reader interface {
	ReadRange(ctx context.Context, tab string, rng Range) ([][]domain.Cell, error)
}

// Range прямоугольный диапазон ячеек, координаты с 1
// ToRow == 0 означает "до последней заполненной строки"
type Range struct {
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

// Cols ширина диапазона
func (r Range) Cols() int {
	return r.ToCol - r.FromCol + 1
}

// OpenEnded true для диапазона без последней строки
func (r Range) OpenEnded() bool {
	return r.ToRow == 0
}

// Contains проверяет, попадает ли ячейка (row, col) в диапазон
func (r Range) Contains(row, col int) bool {
	if row < r.FromRow || col < r.FromCol || col > r.ToCol {
		return false
	}
	return r.OpenEnded() || row <= r.ToRow
}

// String возвращает диапазон в нотации A1
func (r Range) String() string {
	from, _ := excelize.CoordinatesToCellName(r.FromCol, r.FromRow)
	if r.OpenEnded() {
		col, _ := excelize.ColumnNumberToName(r.ToCol)
		return from + ":" + col
	}
	to, _ := excelize.CoordinatesToCellName(r.ToCol, r.ToRow)
	if from == to {
		return from
	}
	return from + ":" + to
}

// ParseRange разбирает диапазон в нотации A1: "B1", "A2:B18", "A20:H22", "A2:D"
func ParseRange(s string) (Range, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Range{}, fmt.Errorf("%w: empty range", ErrInvalidRange)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	fromCol, fromRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}

	rng := Range{FromRow: fromRow, FromCol: fromCol, ToRow: fromRow, ToCol: fromCol}
	if len(parts) == 1 {
		return rng, nil
	}

	end := parts[1]
	if isColumnOnly(end) {
		toCol, err := excelize.ColumnNameToNumber(end)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
		}
		rng.ToCol = toCol
		rng.ToRow = 0
	} else {
		toCol, toRow, err := excelize.CellNameToCoordinates(end)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
		}
		rng.ToCol = toCol
		rng.ToRow = toRow
		if toRow < fromRow {
			return Range{}, fmt.Errorf("%w: %q: rows are reversed", ErrInvalidRange, s)
		}
	}

	if rng.ToCol < rng.FromCol {
		return Range{}, fmt.Errorf("%w: %q: columns are reversed", ErrInvalidRange, s)
	}
	return rng, nil
}

// MustParseRange как ParseRange, но паникует на некорректном диапазоне
func MustParseRange(s string) Range {
	rng, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return rng
}

func isColumnOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Collector собирает разреженные ячейки в прямоугольную матрицу диапазона
type Collector struct {
	rng     Range
	cells   map[int][]domain.Cell
	lastRow int
}

// NewCollector создает сборщик матрицы для диапазона rng
func NewCollector(rng Range) *Collector {
	return &Collector{rng: rng, cells: make(map[int][]domain.Cell)}
}

// Put сохраняет ячейку (row, col); ячейки вне диапазона и пустые игнорируются
func (c *Collector) Put(row, col int, cell domain.Cell) {
	if cell.IsEmpty() || !c.rng.Contains(row, col) {
		return
	}
	line, ok := c.cells[row]
	if !ok {
		line = make([]domain.Cell, c.rng.Cols())
		c.cells[row] = line
	}
	line[col-c.rng.FromCol] = cell
	if row > c.lastRow {
		c.lastRow = row
	}
}

// Matrix возвращает собранную матрицу
func (c *Collector) Matrix() [][]domain.Cell {
	last := c.rng.ToRow
	if c.rng.OpenEnded() {
		last = c.lastRow
	}
	if last < c.rng.FromRow {
		return [][]domain.Cell{}
	}

	out := make([][]domain.Cell, 0, last-c.rng.FromRow+1)
	for row := c.rng.FromRow; row <= last; row++ {
		line, ok := c.cells[row]
		if !ok {
			line = make([]domain.Cell, c.rng.Cols())
		}
		out = append(out, line)
	}
	return out
}

// ColumnNumber переводит имя столбца ("A", "AB") в номер с 1
func ColumnNumber(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %v", ErrInvalidRange, name, err)
	}
	return n, nil
}
