package booking

import "errors"

var (
	// ErrSourceNotFound возвращается, когда вкладка со списком бронирований отсутствует
	ErrSourceNotFound = errors.New("booking.repository: booking source not found")

	// ErrUnknownSource возвращается для неизвестного списка бронирований
	ErrUnknownSource = errors.New("booking.repository: unknown booking source")

	// ErrInvalidConfig возвращается при некорректной настройке столбцов
	ErrInvalidConfig = errors.New("booking.repository: invalid sheet configuration")

	// ErrReadBookings возвращается при ошибке чтения бронирований
	ErrReadBookings = errors.New("booking.repository: failed to read bookings")
)
