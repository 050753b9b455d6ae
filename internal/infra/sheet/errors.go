package sheet

import "errors"

var (
	// ErrTabNotFound возвращается, когда вкладка отсутствует в документе
	ErrTabNotFound = errors.New("sheet: tab not found")

	// ErrInvalidRange возвращается при некорректной нотации диапазона
	ErrInvalidRange = errors.New("sheet: invalid range")

	// ErrReadDocument возвращается при ошибке чтения документа
	ErrReadDocument = errors.New("sheet: failed to read document")
)
