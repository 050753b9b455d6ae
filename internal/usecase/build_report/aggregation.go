package build_report

import (
	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
)

// aggregateBookings раскладывает часы бронирований по ячейкам слот x день
// Строки другого месяца, вне диапазона часов отчёта или с некорректными данными пропускаются
// и учитываются в статистике; прогон при этом не прерывается.
func aggregateBookings(
	records []*domain.BookingRecord,
	slots []int,
	period domain.Period,
	daysInMonth int,
	logger Logger,
) (domain.Grid, AggregationStats) {
	grid := domain.NewGrid(len(slots), daysInMonth)
	stats := AggregationStats{Skipped: make(map[SkipReason]int)}

	slotIndex := make(map[int]int, len(slots))
	for i, hour := range slots {
		slotIndex[hour] = i
	}

	for _, rec := range records {
		stats.Processed++

		if !rec.IsComplete() {
			stats.Skipped[SkipIncomplete]++
			continue
		}

		date, ok := domain.ParseDate(rec.Date)
		if !ok {
			logger.Warn("aggregateBookings: row %d: unparseable date %q, skipped", rec.Row, rec.Date.String())
			stats.Skipped[SkipBadDate]++
			continue
		}
		if !period.Contains(date) {
			stats.Skipped[SkipOtherPeriod]++
			continue
		}

		hour := domain.ParseHour(rec.StartTime)
		slotIdx, ok := slotIndex[hour]
		if !ok {
			logger.Warn("aggregateBookings: row %d: hour %d (%q) is outside report hours %d-%d, skipped",
				rec.Row, hour, rec.StartTime.String(), slots[0], slots[len(slots)-1])
			stats.Skipped[SkipOutsideHours]++
			continue
		}

		dayIdx := date.Day() - 1
		if dayIdx < 0 || dayIdx >= daysInMonth {
			logger.Warn("aggregateBookings: row %d: day %d out of range, skipped", rec.Row, date.Day())
			stats.Skipped[SkipBadDay]++
			continue
		}

		hours, ok := domain.ParseNumber(rec.Hours)
		if !ok {
			logger.Warn("aggregateBookings: row %d: hours %q is not a number, skipped", rec.Row, rec.Hours.String())
			stats.Skipped[SkipBadHours]++
			continue
		}

		grid[slotIdx][dayIdx] += hours
		stats.Aggregated++
	}

	return grid, stats
}
