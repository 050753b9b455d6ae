package domain

import (
	"strings"
	"time"
)

// weekdayLabels нормализованные подписи дней недели (полные и сокращённые)
var weekdayLabels = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday normalizes a free-form weekday label ("Monday", " mon ", "FRI")
func ParseWeekday(label string) (time.Weekday, bool) {
	wd, ok := weekdayLabels[strings.ToLower(strings.TrimSpace(label))]
	return wd, ok
}

// OpeningInterval opening hours of a single weekday. Close may be MidnightHour.
type OpeningInterval struct {
	Open  int
	Close int
}

// Contains returns true if the facility is open during the given hour slot
func (i OpeningInterval) Contains(hour int) bool {
	return hour >= i.Open && hour < i.Close
}

// Valid returns true if the interval satisfies 0 <= open < close <= 24
func (i OpeningInterval) Valid() bool {
	return i.Open >= 0 && i.Open < i.Close && i.Close <= MidnightHour
}

// WeeklySchedule opening hours per weekday, indexed by time.Weekday.
// A nil entry means the facility is closed that day.
type WeeklySchedule struct {
	Days         [7]*OpeningInterval
	EarliestHour int
	LatestHour   int
	UsedDefaults bool // the parsed configuration was replaced by the default schedule
}

// NewWeeklySchedule создает пустое расписание с граничными значениями часов
func NewWeeklySchedule() *WeeklySchedule {
	return &WeeklySchedule{
		EarliestHour: MidnightHour,
		LatestHour:   0,
	}
}

// DefaultWeeklySchedule возвращает расписание по умолчанию: ежедневно 8-23
func DefaultWeeklySchedule() *WeeklySchedule {
	s := &WeeklySchedule{
		EarliestHour: DefaultOpenHour,
		LatestHour:   DefaultCloseHour,
		UsedDefaults: true,
	}
	for wd := range s.Days {
		s.Days[wd] = &OpeningInterval{Open: DefaultOpenHour, Close: DefaultCloseHour}
	}
	return s
}

// Set записывает интервал дня недели и обновляет границы earliest/latest
func (s *WeeklySchedule) Set(wd time.Weekday, interval OpeningInterval) {
	iv := interval
	s.Days[wd] = &iv
	if interval.Open < s.EarliestHour {
		s.EarliestHour = interval.Open
	}
	if interval.Close > s.LatestHour {
		s.LatestHour = interval.Close
	}
}

// Interval returns the opening interval of the weekday
func (s *WeeklySchedule) Interval(wd time.Weekday) (OpeningInterval, bool) {
	if wd < time.Sunday || wd > time.Saturday || s.Days[wd] == nil {
		return OpeningInterval{}, false
	}
	return *s.Days[wd], true
}

// IsOpenAt returns true if the facility is open at the hour slot of the weekday
func (s *WeeklySchedule) IsOpenAt(wd time.Weekday, hour int) bool {
	interval, ok := s.Interval(wd)
	return ok && interval.Contains(hour)
}

// OpenDays returns the number of weekdays with an opening interval
func (s *WeeklySchedule) OpenDays() int {
	count := 0
	for _, d := range s.Days {
		if d != nil {
			count++
		}
	}
	return count
}

// IsDegenerate returns true if no usable bounds were derived
func (s *WeeklySchedule) IsDegenerate() bool {
	return s.EarliestHour == MidnightHour || s.LatestHour == 0 || s.OpenDays() == 0
}
