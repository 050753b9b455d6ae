package openinghours

import "errors"

var (
	// ErrScheduleSourceMissing возвращается, когда нет ни списочной, ни табличной раскладки расписания
	ErrScheduleSourceMissing = errors.New("openinghours: schedule source missing")

	// ErrCapacityMissing возвращается, когда не задано количество кортов
	ErrCapacityMissing = errors.New("openinghours: capacity per hour missing")

	// ErrInvalidCapacity возвращается, когда количество кортов не является неотрицательным числом
	ErrInvalidCapacity = errors.New("openinghours: invalid capacity per hour")
)
