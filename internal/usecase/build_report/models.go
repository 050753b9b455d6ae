package build_report

import (
	"time"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/service/openinghours"
)

// Request модель запроса на построение отчёта
type Request struct {
	PeriodCode string // месяц и год отчёта в формате MMYY
}

// Response модель готового отчёта об использовании площадки
type Response struct {
	RunID       string    // идентификатор запуска
	ReportID    string    // идентификатор отчёта в хранилище (пусто, если не сохранялся)
	GeneratedAt time.Time // время построения
	Period      domain.Period

	Facility     domain.FacilityConfig
	Layout       openinghours.Layout // раскладка, из которой взято расписание
	Schedule     *domain.WeeklySchedule
	DaysInMonth  int
	DayOfWeek    domain.DayOfWeekCache
	EarliestHour int
	LatestHour   int
	TimeSlots    []int    // часы строк отчёта
	HourLabels   []string // подписи строк ("9AM", "12PM")

	Availability domain.Grid         // максимум часов на слот/день
	Bookings     domain.Grid         // забронированные часы на слот/день
	CellStatuses [][]domain.CellStatus

	Rows           []RowSummary
	Days           []DaySummary
	TotalBooked    float64
	TotalAvailable float64
	Utilization    *float64 // nil, если доступных часов нет

	Reconciliation Reconciliation
	Diagnostics    AggregationStats
}

// RowSummary итоги по строке (часу)
type RowSummary struct {
	Hour        int
	Label       string
	Booked      float64
	Available   float64
	Utilization *float64 // nil, если в этот час площадка всегда закрыта
}

// DaySummary итоги по столбцу (дню месяца)
type DaySummary struct {
	Day         int
	Weekday     string
	Booked      float64
	Available   float64
	Utilization *float64
}

// Reconciliation результат сверки итогов двух списков бронирований
type Reconciliation struct {
	Status       domain.ReconciliationStatus
	UnsplitTotal float64
	SplitTotal   float64
	Difference   float64
}

// SkipReason причина пропуска строки бронирования
type SkipReason string

const (
	SkipIncomplete   SkipReason = "incomplete"
	SkipBadDate      SkipReason = "bad_date"
	SkipOtherPeriod  SkipReason = "other_period"
	SkipOutsideHours SkipReason = "outside_hours"
	SkipBadDay       SkipReason = "bad_day"
	SkipBadHours     SkipReason = "bad_hours"
)

// AggregationStats диагностика прохода агрегации
type AggregationStats struct {
	Processed  int // строк просмотрено
	Aggregated int // строк учтено в сетке
	Skipped    map[SkipReason]int
}

// SkippedTotal returns the number of rows that did not contribute to the grid
func (s AggregationStats) SkippedTotal() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}
