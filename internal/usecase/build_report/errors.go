package build_report

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (код периода)
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConfiguration возвращается, когда конфигурация площадки отсутствует или непригодна
	ErrConfiguration = errors.New("facility configuration error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
