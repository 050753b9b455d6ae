package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ampmPattern   = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(AM|PM)$`)
	clockPattern  = regexp.MustCompile(`^(\d{1,2}):`)
	spreadsheetT0 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
)

// dateLayouts форматы текстовой даты бронирования, в порядке приоритета
var dateLayouts = []string{
	DateFormat,
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
}

// ParseHour resolves a time-of-day cell into an hour in [0,23].
// Unparseable input degrades to 0. The value 24 ("24:00") folds to 0;
// closing-hour callers promote 0 to MidnightHour themselves.
func ParseHour(c Cell) int {
	switch c.Kind {
	case CellTime:
		return c.Time.Hour()
	case CellNumber:
		return hourFromDayFraction(c.Number)
	case CellText:
		return hourFromText(c.Text)
	default:
		return 0
	}
}

// hourFromDayFraction переводит долю суток в час
// Целая часть (серийный номер даты в таблице) отбрасывается
func hourFromDayFraction(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	frac := v - math.Floor(v)
	h := int(math.Floor(frac*HoursPerDay + 1e-9))
	return normalizeHour(h)
}

func hourFromText(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if m := ampmPattern.FindStringSubmatch(s); m != nil {
		h, err := strconv.Atoi(m[1])
		if err != nil || h > 12 {
			return 0
		}
		pm := strings.EqualFold(m[3], "PM")
		switch {
		case h == 12 && !pm:
			return 0
		case h == 12 && pm:
			return 12
		case pm:
			return h + 12
		default:
			return h
		}
	}

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0
		}
		return normalizeHour(h)
	}

	h, ok := LeadingHour(s)
	if !ok {
		return 0
	}
	return normalizeHour(h)
}

// LeadingHour читает ведущие цифры часа ("09:30" -> 9, "9.5" -> 9, "9h" -> 9)
// Не более двух цифр, значение не больше MidnightHour.
func LeadingHour(s string) (int, bool) {
	s = strings.TrimSpace(s)

	hour, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		hour = hour*10 + int(r-'0')
		digits++
		if digits > 2 {
			return 0, false
		}
	}
	if digits == 0 || hour > MidnightHour {
		return 0, false
	}
	return hour, true
}

// normalizeHour приводит час к [0,23]: 24 -> 0, остальное вне диапазона -> 0
func normalizeHour(h int) int {
	if h < 0 || h > MidnightHour {
		return 0
	}
	return h % MidnightHour
}

// HourLabel formats a slot hour for the report: "9AM", "12PM", "Midnight"
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12AM"
	case hour == 12:
		return "12PM"
	case hour == MidnightHour:
		return "Midnight"
	case hour < 12:
		return strconv.Itoa(hour) + "AM"
	default:
		return strconv.Itoa(hour-12) + "PM"
	}
}

// ParseDate извлекает календарную дату из ячейки бронирования
// Поддерживаются: дата/время, серийный номер таблицы и текстовые форматы из dateLayouts
func ParseDate(c Cell) (time.Time, bool) {
	switch c.Kind {
	case CellTime:
		return c.Time, true
	case CellNumber:
		if c.Number <= 0 || math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return time.Time{}, false
		}
		days := int(math.Floor(c.Number))
		return spreadsheetT0.AddDate(0, 0, days), true
	case CellText:
		s := strings.TrimSpace(c.Text)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
