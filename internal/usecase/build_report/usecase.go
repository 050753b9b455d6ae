package build_report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/storage/booking"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/storage/facility"
)

// Статусы запуска для метрик
const (
	runStatusOK          = "ok"
	runStatusInvalid     = "invalid_input"
	runStatusConfigError = "config_error"
	runStatusError       = "error"
)

// UseCase use case построения месячного отчёта об использовании площадки
type UseCase struct {
	facilityRepo FacilityRepository
	bookingRepo  BookingRepository
	resolver     ScheduleResolver
	sink         ReportSink
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// sink может быть nil - тогда отчёт только возвращается вызывающему
func NewUseCase(
	facilityRepo FacilityRepository,
	bookingRepo BookingRepository,
	resolver ScheduleResolver,
	sink ReportSink,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo: facilityRepo,
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		sink:         sink,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет построение отчёта за один месяц
// Конфигурация площадки загружается заново на каждый запуск и передаётся дальше явно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	started := uc.timeProvider.Now()

	resp, err := uc.execute(ctx, req, started)

	status := runStatusOK
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidInput):
		status = runStatusInvalid
	case errors.Is(err, ErrConfiguration):
		status = runStatusConfigError
	default:
		status = runStatusError
	}
	uc.metrics.RecordReportRun(status, uc.timeProvider.Now().Sub(started))

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request, started time.Time) (*Response, error) {
	// 1. Валидация входных данных
	period, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BuildReport: validation failed: %v", err)
		return nil, err
	}

	runID := uuid.NewString()
	uc.logger.Info("BuildReport: run=%s period=%s", runID, period.Code())

	// 2. Загружаем конфигурацию площадки
	src, err := uc.facilityRepo.GetSource(ctx)
	if err != nil {
		uc.logger.Error("BuildReport: failed to load facility configuration: %v", err)
		return nil, fmt.Errorf("%w: failed to load facility configuration: %v", loadErrorKind(err), err)
	}

	resolved, err := uc.resolver.Resolve(src)
	if err != nil {
		uc.logger.Error("BuildReport: failed to resolve facility configuration: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if resolved.Schedule.UsedDefaults {
		uc.logger.Warn("BuildReport: run=%s uses default opening hours", runID)
	}

	// 3. Календарь месяца
	dow, err := domain.NewDayOfWeekCache(period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	daysInMonth := len(dow)

	// 4. Сетка доступности
	slots := buildTimeSlots(resolved.Schedule)
	availability := buildAvailabilityGrid(resolved.Schedule, resolved.Facility.CapacityPerHour, slots, dow)

	// 5. Итоги двух списков для сверки
	unsplitTotal, err := uc.bookingRepo.SumHours(ctx, domain.SourceUnsplit)
	if err != nil {
		uc.logger.Error("BuildReport: failed to sum unsplit hours: %v", err)
		return nil, fmt.Errorf("%w: failed to sum unsplit hours: %v", loadErrorKind(err), err)
	}
	splitTotal, err := uc.bookingRepo.SumHours(ctx, domain.SourceSplit)
	if err != nil {
		uc.logger.Error("BuildReport: failed to sum split hours: %v", err)
		return nil, fmt.Errorf("%w: failed to sum split hours: %v", loadErrorKind(err), err)
	}

	reconciliation := reconcile(unsplitTotal, splitTotal)
	if reconciliation.Status == domain.ReconciliationMismatch {
		uc.logger.Warn("BuildReport: run=%s hours mismatch: unsplit=%.2f split=%.2f",
			runID, unsplitTotal, splitTotal)
	}
	uc.metrics.RecordReconciliation(string(reconciliation.Status))

	// 6. Агрегация сплитованных бронирований
	records, err := uc.bookingRepo.ListRecords(ctx, domain.SourceSplit)
	if err != nil {
		uc.logger.Error("BuildReport: failed to read split bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to read split bookings: %v", loadErrorKind(err), err)
	}

	bookings, stats := aggregateBookings(records, slots, period, daysInMonth, uc.logger)
	uc.metrics.RecordRows(stats.Processed, skippedByReason(stats))

	// 7. Итоги и загрузка
	sum := summarize(availability, bookings, slots, dow)
	if sum.utilization != nil {
		uc.metrics.SetUtilization(resolved.Facility.Name, *sum.utilization)
	}

	labels := make([]string, len(slots))
	for i, hour := range slots {
		labels[i] = domain.HourLabel(hour)
	}

	resp := &Response{
		RunID:          runID,
		GeneratedAt:    started,
		Period:         period,
		Facility:       resolved.Facility,
		Layout:         resolved.Layout,
		Schedule:       resolved.Schedule,
		DaysInMonth:    daysInMonth,
		DayOfWeek:      dow,
		EarliestHour:   resolved.Schedule.EarliestHour,
		LatestHour:     resolved.Schedule.LatestHour,
		TimeSlots:      slots,
		HourLabels:     labels,
		Availability:   availability,
		Bookings:       bookings,
		CellStatuses:   sum.statuses,
		Rows:           sum.rows,
		Days:           sum.days,
		TotalBooked:    sum.totalBooked,
		TotalAvailable: sum.totalAvailable,
		Utilization:    sum.utilization,
		Reconciliation: reconciliation,
		Diagnostics:    stats,
	}

	// 8. Выгрузка отчёта
	if uc.sink != nil {
		reportID, err := uc.sink.Save(ctx, resp)
		if err != nil {
			uc.logger.Error("BuildReport: failed to save report run=%s: %v", runID, err)
			return nil, fmt.Errorf("%w: failed to save report: %v", ErrInternal, err)
		}
		resp.ReportID = reportID
	}

	uc.logger.Info("BuildReport: run=%s period=%s slots=%d days=%d rows=%d aggregated=%d skipped=%d booked=%.2f available=%.2f reconciliation=%s",
		runID, period.Code(), len(slots), daysInMonth, stats.Processed, stats.Aggregated, stats.SkippedTotal(),
		sum.totalBooked, sum.totalAvailable, reconciliation.Status)

	return resp, nil
}

func skippedByReason(stats AggregationStats) map[string]int {
	out := make(map[string]int, len(stats.Skipped))
	for reason, n := range stats.Skipped {
		out[string(reason)] = n
	}
	return out
}

// loadErrorKind отсутствующие вкладки документа считаются ошибкой конфигурации, остальное - внутренней ошибкой
func loadErrorKind(err error) error {
	if errors.Is(err, facility.ErrFacilityNotFound) || errors.Is(err, booking.ErrSourceNotFound) {
		return ErrConfiguration
	}
	return ErrInternal
}
