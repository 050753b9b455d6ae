package build_report

import (
	"math"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
)

// reconcile сверяет итоги несплитованного и сплитованного списков
// Расхождение не блокирует построение отчёта
func reconcile(unsplitTotal, splitTotal float64) Reconciliation {
	diff := unsplitTotal - splitTotal
	status := domain.ReconciliationMismatch
	if math.Abs(diff) <= domain.ReconciliationTolerance+1e-9 {
		status = domain.ReconciliationOK
	}

	return Reconciliation{
		Status:       status,
		UnsplitTotal: unsplitTotal,
		SplitTotal:   splitTotal,
		Difference:   diff,
	}
}

// ratio возвращает booked/available или nil, если доступных часов нет
func ratio(booked, available float64) *float64 {
	if available <= 0 {
		return nil
	}
	v := booked / available
	return &v
}

// summary итоги по сеткам доступности и бронирований
type summary struct {
	rows           []RowSummary
	days           []DaySummary
	statuses       [][]domain.CellStatus
	totalBooked    float64
	totalAvailable float64
	utilization    *float64
}

// summarize считает итоги по строкам, столбцам и по всему месяцу
// Сетки должны быть одинаковой размерности len(slots) x len(dow)
func summarize(availability, bookings domain.Grid, slots []int, dow domain.DayOfWeekCache) summary {
	s := summary{
		rows:     make([]RowSummary, len(slots)),
		days:     make([]DaySummary, len(dow)),
		statuses: make([][]domain.CellStatus, len(slots)),
	}

	for i, hour := range slots {
		booked := bookings.RowSum(i)
		available := availability.RowSum(i)
		s.rows[i] = RowSummary{
			Hour:        hour,
			Label:       domain.HourLabel(hour),
			Booked:      booked,
			Available:   available,
			Utilization: ratio(booked, available),
		}

		s.statuses[i] = make([]domain.CellStatus, len(dow))
		for d := range dow {
			s.statuses[i][d] = domain.ClassifyCell(bookings[i][d], availability[i][d])
		}
	}

	for d, day := range dow {
		booked := bookings.ColSum(d)
		available := availability.ColSum(d)
		s.days[d] = DaySummary{
			Day:         d + 1,
			Weekday:     day.Name,
			Booked:      booked,
			Available:   available,
			Utilization: ratio(booked, available),
		}
	}

	s.totalBooked = bookings.Sum()
	s.totalAvailable = availability.Sum()
	s.utilization = ratio(s.totalBooked, s.totalAvailable)

	return s
}
