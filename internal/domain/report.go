package domain

// Grid hour-slot x day-of-month matrix; Grid[slot][day-1]
type Grid [][]float64

// NewGrid создает нулевую матрицу rows x cols
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}

// Rows returns the number of hour slots
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of days
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// RowSum сумма по строке (часу)
func (g Grid) RowSum(row int) float64 {
	var sum float64
	for _, v := range g[row] {
		sum += v
	}
	return sum
}

// ColSum сумма по столбцу (дню)
func (g Grid) ColSum(col int) float64 {
	var sum float64
	for _, row := range g {
		sum += row[col]
	}
	return sum
}

// Sum сумма по всей матрице
func (g Grid) Sum() float64 {
	var sum float64
	for i := range g {
		sum += g.RowSum(i)
	}
	return sum
}

// ReconciliationStatus result of comparing the unsplit and split totals
type ReconciliationStatus string

const (
	ReconciliationOK       ReconciliationStatus = "OK"
	ReconciliationMismatch ReconciliationStatus = "Mismatch"
)

// CellStatus presentation class of a report cell
type CellStatus string

const (
	CellClosed       CellStatus = "closed"
	CellOpen         CellStatus = "open"
	CellAtCapacity   CellStatus = "at_capacity"
	CellOverCapacity CellStatus = "over_capacity"
)

const capacityEpsilon = 1e-9

// ClassifyCell определяет класс ячейки отчёта по занятости и доступности
// Перебронирование (booked > available) представимо и не считается "at capacity"
func ClassifyCell(booked, available float64) CellStatus {
	switch {
	case available <= 0:
		return CellClosed
	case booked > available+capacityEpsilon:
		return CellOverCapacity
	case booked >= available-capacityEpsilon:
		return CellAtCapacity
	default:
		return CellOpen
	}
}
