package build_report

import "github.com/m04kA/SMC-UtilizationReport/internal/domain"

// Диапазон строк отчёта по умолчанию (включительно)
const (
	defaultFirstSlot = 8
	defaultLastSlot  = 23
)

// buildTimeSlots вычисляет часы строк отчёта: от earliestHour до последнего часа работы
// При закрытии в полночь (24) последняя строка - 23.
// Для расписания по умолчанию и для пустого диапазона используется 8..23.
func buildTimeSlots(schedule *domain.WeeklySchedule) []int {
	first := schedule.EarliestHour
	last := schedule.LatestHour - 1
	if schedule.LatestHour == domain.MidnightHour {
		last = domain.HoursPerDay - 1
	}

	if schedule.UsedDefaults || first > last || first < 0 || last > domain.HoursPerDay-1 {
		first, last = defaultFirstSlot, defaultLastSlot
	}

	slots := make([]int, 0, last-first+1)
	for h := first; h <= last; h++ {
		slots = append(slots, h)
	}
	return slots
}

// buildAvailabilityGrid строит сетку максимально доступных часов слот x день
// Ячейка = capacity, если площадка открыта в этот час в этот день недели, иначе 0
func buildAvailabilityGrid(
	schedule *domain.WeeklySchedule,
	capacity float64,
	slots []int,
	days domain.DayOfWeekCache,
) domain.Grid {
	grid := domain.NewGrid(len(slots), len(days))

	for slotIdx, hour := range slots {
		for dayIdx, dow := range days {
			if schedule.IsOpenAt(dow.Weekday, hour) {
				grid[slotIdx][dayIdx] = capacity
			}
		}
	}

	return grid
}
