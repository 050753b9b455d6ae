package report

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("report.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("report.repository: failed to execute query")

	// ErrEncode возвращается при ошибке сериализации отчёта
	ErrEncode = errors.New("report.repository: failed to encode report")

	// ErrWriteFile возвращается при ошибке записи файла отчёта
	ErrWriteFile = errors.New("report.repository: failed to write report file")
)
