package openinghours

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
)

// gridColumnWeekdays дни недели по столбцам 1..7 табличной раскладки
var gridColumnWeekdays = [7]time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
}

// Service сервис разбора расписания работы площадки
type Service struct {
	logger Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(logger Logger) *Service {
	return &Service{logger: logger}
}

// Resolve разбирает конфигурацию площадки: количество кортов и недельное расписание
// Раскладка-список используется, если в ней есть хотя бы одна заполненная строка, иначе - табличная.
// Если после разбора границы часов не определены, подставляется расписание по умолчанию.
func (s *Service) Resolve(src *Source) (*Result, error) {
	if src == nil {
		return nil, ErrScheduleSourceMissing
	}

	capacity, err := parseCapacity(src.Capacity)
	if err != nil {
		s.logger.Error("Resolve: %v", err)
		return nil, err
	}

	source := selectSource(src)
	if source == nil {
		s.logger.Error("Resolve: neither list nor grid schedule layout is configured")
		return nil, ErrScheduleSourceMissing
	}

	var schedule *domain.WeeklySchedule
	switch layout := source.(type) {
	case *ListLayout:
		schedule = s.parseList(layout)
	case *GridLayout:
		schedule = s.parseGrid(layout)
	}

	result := &Result{
		Facility: domain.FacilityConfig{
			Name:            strings.TrimSpace(src.Name.String()),
			CapacityPerHour: capacity,
		},
		Schedule: schedule,
		Layout:   source.layout(),
	}

	if schedule.IsDegenerate() {
		s.logger.Warn("Resolve: %s layout produced no usable opening hours, using default %d-%d",
			source.layout(), domain.DefaultOpenHour, domain.DefaultCloseHour)
		result.Schedule = domain.DefaultWeeklySchedule()
		result.Layout = LayoutDefault
	}

	s.logger.Info("Resolve: facility=%q capacity=%g layout=%s open_days=%d hours=%d-%d",
		result.Facility.Name, capacity, result.Layout, result.Schedule.OpenDays(),
		result.Schedule.EarliestHour, result.Schedule.LatestHour)
	return result, nil
}

// selectSource выбирает раскладку расписания
func selectSource(src *Source) ScheduleSource {
	if src.List != nil && src.List.HasCompleteRow() {
		return src.List
	}
	if src.Grid != nil {
		return src.Grid
	}
	if src.List != nil {
		// список есть, но пуст - дальше сработает расписание по умолчанию
		return src.List
	}
	return nil
}

func parseCapacity(cell *domain.Cell) (float64, error) {
	if cell == nil || cell.IsEmpty() {
		return 0, ErrCapacityMissing
	}
	v, ok := domain.ParseNumber(*cell)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCapacity, cell.String())
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %g must not be negative", ErrInvalidCapacity, v)
	}
	return v, nil
}

// parseList разбирает строки вида {"Monday", "09:00-17:00"}
func (s *Service) parseList(layout *ListLayout) *domain.WeeklySchedule {
	schedule := domain.NewWeeklySchedule()

	for i, row := range layout.Rows {
		if i >= domain.MaxListLayoutRows {
			break
		}
		if !row.IsComplete() {
			continue
		}

		label := row.Day.String()
		wd, ok := domain.ParseWeekday(label)
		if !ok {
			s.logger.Warn("parseList: row %d: unknown weekday %q, skipped", i+1, label)
			continue
		}

		interval, ok := parseHoursRange(row.Hours.String())
		if !ok {
			s.logger.Warn("parseList: row %d: invalid hours range %q, skipped", i+1, row.Hours.String())
			continue
		}

		schedule.Set(wd, interval)
	}

	return schedule
}

// parseHoursRange разбирает "HH:MM-HH:MM"; закрытие "24:00" или "00:00" означает полночь (24)
func parseHoursRange(s string) (domain.OpeningInterval, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return domain.OpeningInterval{}, false
	}
	openStr := strings.TrimSpace(parts[0])
	closeStr := strings.TrimSpace(parts[1])

	open, ok := domain.LeadingHour(openStr)
	if !ok {
		return domain.OpeningInterval{}, false
	}
	closeHour, ok := domain.LeadingHour(closeStr)
	if !ok {
		return domain.OpeningInterval{}, false
	}

	if closeStr == "24:00" || (closeHour == 0 && strings.Contains(closeStr, "00:00")) {
		closeHour = domain.MidnightHour
	}

	interval := domain.OpeningInterval{Open: open, Close: closeHour}
	if !interval.Valid() {
		return domain.OpeningInterval{}, false
	}
	return interval, true
}

// parseGrid разбирает блок 3x8: заголовки дней, время открытия и закрытия
func (s *Service) parseGrid(layout *GridLayout) *domain.WeeklySchedule {
	schedule := domain.NewWeeklySchedule()

	for col := 1; col < domain.GridLayoutCols; col++ {
		wd := gridColumnWeekdays[col-1]
		header := layout.cell(0, col)
		if !header.IsEmpty() {
			if parsed, ok := domain.ParseWeekday(header.String()); ok {
				wd = parsed
			} else {
				s.logger.Warn("parseGrid: column %d: unknown weekday header %q, using %s",
					col, header.String(), wd)
			}
		}

		openCell := layout.cell(1, col)
		closeCell := layout.cell(2, col)
		if openCell.IsEmpty() && closeCell.IsEmpty() {
			continue
		}

		open := domain.ParseHour(openCell)
		closeHour := domain.ParseHour(closeCell)
		if closeHour == 0 {
			closeHour = domain.MidnightHour
		}

		interval := domain.OpeningInterval{Open: open, Close: closeHour}
		if !interval.Valid() {
			s.logger.Warn("parseGrid: column %d (%s): invalid interval %d-%d, skipped",
				col, wd, open, closeHour)
			continue
		}

		schedule.Set(wd, interval)
	}

	return schedule
}
