package build_report

import (
	"context"
	"time"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/service/openinghours"
)

// FacilityRepository интерфейс репозитория конфигурации площадки
type FacilityRepository interface {
	// GetSource читает сырые данные конфигурации: название, количество кортов, расписание
	GetSource(ctx context.Context) (*openinghours.Source, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListRecords читает все строки бронирований указанного списка
	ListRecords(ctx context.Context, source domain.BookingSource) ([]*domain.BookingRecord, error)
	// SumHours суммирует столбец часов указанного списка
	SumHours(ctx context.Context, source domain.BookingSource) (float64, error)
}

// ScheduleResolver интерфейс разбора расписания работы площадки
type ScheduleResolver interface {
	Resolve(src *openinghours.Source) (*openinghours.Result, error)
}

// ReportSink интерфейс выгрузки готового отчёта
type ReportSink interface {
	// Save сохраняет отчёт и возвращает его идентификатор в хранилище
	Save(ctx context.Context, report *Response) (string, error)
}

// Metrics интерфейс метрик построения отчёта
type Metrics interface {
	RecordReportRun(status string, duration time.Duration)
	RecordRows(processed int, skipped map[string]int)
	RecordReconciliation(status string)
	SetUtilization(facility string, value float64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
