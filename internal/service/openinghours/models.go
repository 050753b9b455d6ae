package openinghours

import "github.com/m04kA/SMC-UtilizationReport/internal/domain"

// Layout тип раскладки расписания в конфигурации
type Layout string

const (
	LayoutList    Layout = "list"
	LayoutGrid    Layout = "grid"
	LayoutDefault Layout = "default"
)

// ScheduleSource is one of ListLayout or GridLayout
type ScheduleSource interface {
	layout() Layout
}

// ListRow строка списочной раскладки: подпись дня и диапазон "HH:MM-HH:MM"
type ListRow struct {
	Day   domain.Cell
	Hours domain.Cell
}

// IsComplete returns true if both the day label and the hours range are present
func (r ListRow) IsComplete() bool {
	return !r.Day.IsEmpty() && !r.Hours.IsEmpty()
}

// ListLayout up to MaxListLayoutRows day/range rows
type ListLayout struct {
	Rows []ListRow
}

func (ListLayout) layout() Layout { return LayoutList }

// HasCompleteRow returns true if at least one candidate row is fully populated
func (l *ListLayout) HasCompleteRow() bool {
	for i, row := range l.Rows {
		if i >= domain.MaxListLayoutRows {
			break
		}
		if row.IsComplete() {
			return true
		}
	}
	return false
}

// GridLayout 3x8 block: row 0 weekday headers in columns 1..7 (Sun..Sat),
// rows 1 and 2 open and close times.
type GridLayout struct {
	Cells [][]domain.Cell
}

func (GridLayout) layout() Layout { return LayoutGrid }

// cell возвращает ячейку блока или пустую, если блок короче
func (g *GridLayout) cell(row, col int) domain.Cell {
	if row >= len(g.Cells) || col >= len(g.Cells[row]) {
		return domain.Cell{}
	}
	return g.Cells[row][col]
}

// Source raw facility configuration as read from the settings tab.
// List and Grid are nil when the corresponding range is not configured.
type Source struct {
	Name     domain.Cell
	Capacity *domain.Cell
	List     *ListLayout
	Grid     *GridLayout
}

// Result resolved facility configuration
type Result struct {
	Facility domain.FacilityConfig
	Schedule *domain.WeeklySchedule
	Layout   Layout
}
