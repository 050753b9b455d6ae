package facility

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда вкладка настроек площадки отсутствует
	ErrFacilityNotFound = errors.New("facility.repository: facility settings not found")

	// ErrInvalidConfig возвращается при некорректных адресах ячеек и диапазонов
	ErrInvalidConfig = errors.New("facility.repository: invalid sheet configuration")

	// ErrReadSettings возвращается при ошибке чтения настроек
	ErrReadSettings = errors.New("facility.repository: failed to read settings")
)
