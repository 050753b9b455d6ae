package domain

// Hour constants
const (
	HoursPerDay  = 24
	MidnightHour = 24 // sentinel: closes at the end of the day
)

// Default opening hours, used when the facility schedule cannot be parsed
const (
	DefaultOpenHour  = 8
	DefaultCloseHour = 23
)

// Configuration layout limits
const (
	MaxListLayoutRows = 17
	GridLayoutRows    = 3
	GridLayoutCols    = 8
)

// ReconciliationTolerance допустимое расхождение между итогами двух источников
const ReconciliationTolerance = 0.01

// Time format constants
const (
	DateFormat   = "2006-01-02" // YYYY-MM-DD
	PeriodFormat = "0106"       // MMYY
)
