package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidPeriod возвращается при некорректном месяце/годе отчёта
var ErrInvalidPeriod = errors.New("domain: invalid report period")

// Period represents the target month of a report
type Period struct {
	Month int // 1..12
	Year  int // four digits
}

// ParsePeriod разбирает код периода в формате MMYY (например, "0225" -> февраль 2025)
func ParsePeriod(code string) (Period, error) {
	if len(code) != len(PeriodFormat) || !allDigits(code) {
		return Period{}, fmt.Errorf("%w: period code %q must have 4 digits (MMYY)", ErrInvalidPeriod, code)
	}

	month, err := strconv.Atoi(code[:2])
	if err != nil {
		return Period{}, fmt.Errorf("%w: month in %q is not a number", ErrInvalidPeriod, code)
	}
	yy, err := strconv.Atoi(code[2:])
	if err != nil {
		return Period{}, fmt.Errorf("%w: year in %q is not a number", ErrInvalidPeriod, code)
	}

	p := Period{Month: month, Year: 2000 + yy}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Validate checks that the month and year are in range
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d out of range 1..12", ErrInvalidPeriod, p.Month)
	}
	if p.Year < 1 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// Code returns the MMYY representation of the period
func (p Period) Code() string {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format(PeriodFormat)
}

// Contains returns true if the date falls into the period
func (p Period) Contains(t time.Time) bool {
	return int(t.Month()) == p.Month && t.Year() == p.Year
}

// DaysInMonth возвращает количество дней в месяце с учётом високосных лет
func DaysInMonth(month, year int) int {
	// нулевой день следующего месяца = последний день текущего
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayOfWeek weekday of a calendar day
type DayOfWeek struct {
	Weekday time.Weekday // 0=Sunday..6=Saturday
	Name    string
}

// DayOfWeekCache maps day-of-month (1-based) to its weekday; index = day-1
type DayOfWeekCache []DayOfWeek

// NewDayOfWeekCache строит соответствие день месяца -> день недели для всего месяца
func NewDayOfWeekCache(month, year int) (DayOfWeekCache, error) {
	if err := (Period{Month: month, Year: year}).Validate(); err != nil {
		return nil, err
	}

	days := DaysInMonth(month, year)
	cache := make(DayOfWeekCache, days)
	for d := 1; d <= days; d++ {
		wd := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).Weekday()
		cache[d-1] = DayOfWeek{Weekday: wd, Name: wd.String()}
	}
	return cache, nil
}

// Day возвращает день недели для дня месяца (1-based)
func (c DayOfWeekCache) Day(day int) (DayOfWeek, bool) {
	if day < 1 || day > len(c) {
		return DayOfWeek{}, false
	}
	return c[day-1], true
}
