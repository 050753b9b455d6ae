package build_report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/storage/booking"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/storage/facility"
	"github.com/m04kA/SMC-UtilizationReport/internal/service/openinghours"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFacilityRepo struct {
	src *openinghours.Source
	err error
}

func (f *fakeFacilityRepo) GetSource(context.Context) (*openinghours.Source, error) {
	return f.src, f.err
}

type fakeBookingRepo struct {
	records map[domain.BookingSource][]*domain.BookingRecord
	totals  map[domain.BookingSource]float64
	err     error
}

func (f *fakeBookingRepo) ListRecords(_ context.Context, src domain.BookingSource) ([]*domain.BookingRecord, error) {
	return f.records[src], f.err
}

func (f *fakeBookingRepo) SumHours(_ context.Context, src domain.BookingSource) (float64, error) {
	return f.totals[src], f.err
}

type fakeSink struct {
	saved []*Response
	err   error
}

func (f *fakeSink) Save(_ context.Context, r *Response) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, r)
	return "42", nil
}

type fakeMetrics struct {
	runs            map[string]int
	processed       int
	skipped         map[string]int
	reconciliations []string
	utilization     map[string]float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		runs:        map[string]int{},
		skipped:     map[string]int{},
		utilization: map[string]float64{},
	}
}

func (m *fakeMetrics) RecordReportRun(status string, _ time.Duration) { m.runs[status]++ }
func (m *fakeMetrics) RecordRows(processed int, skipped map[string]int) {
	m.processed += processed
	for k, v := range skipped {
		m.skipped[k] += v
	}
}
func (m *fakeMetrics) RecordReconciliation(status string)    { m.reconciliations = append(m.reconciliations, status) }
func (m *fakeMetrics) SetUtilization(name string, v float64) { m.utilization[name] = v }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func weekdayListSource(capacity float64) *openinghours.Source {
	rows := make([]openinghours.ListRow, 0, 5)
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		rows = append(rows, openinghours.ListRow{
			Day:   domain.TextCell(day),
			Hours: domain.TextCell("09:00-17:00"),
		})
	}
	c := domain.NumberCell(capacity)
	return &openinghours.Source{
		Name:     domain.TextCell("Riverside Padel"),
		Capacity: &c,
		List:     &openinghours.ListLayout{Rows: rows},
	}
}

func bookingRecord(row int, date, start string, hours float64) *domain.BookingRecord {
	return &domain.BookingRecord{
		Row:       row,
		Date:      domain.TextCell(date),
		StartTime: domain.TextCell(start),
		Hours:     domain.NumberCell(hours),
	}
}

func newTestUseCase(facility *fakeFacilityRepo, bookings *fakeBookingRepo, sink ReportSink, m *fakeMetrics) *UseCase {
	uc := NewUseCase(facility, bookings, openinghours.NewService(nopLogger{}), sink, m, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_February2025(t *testing.T) {
	bookings := &fakeBookingRepo{
		records: map[domain.BookingSource][]*domain.BookingRecord{
			domain.SourceSplit: {
				bookingRecord(2, "2025-02-03", "9:00 AM", 1), // понедельник, 9
				bookingRecord(3, "2025-02-03", "09:00", 1),   // тот же слот -> at capacity
				bookingRecord(4, "2025-02-04", "16:00", 0.5), // вторник, 16
				bookingRecord(5, "2025-03-03", "10:00", 1),   // другой месяц
				bookingRecord(6, "2025-02-05", "20:00", 1),   // вне часов работы
				bookingRecord(7, "2025-02-05", "10:00", 0),   // нулевая длительность учитывается
				{Row: 8, Date: domain.TextCell("2025-02-06"), StartTime: domain.TextCell("11:00"), Hours: domain.TextCell("n/a")},
				{Row: 9},
			},
		},
		totals: map[domain.BookingSource]float64{
			domain.SourceUnsplit: 120.0,
			domain.SourceSplit:   120.0049,
		},
	}
	sink := &fakeSink{}
	m := newFakeMetrics()
	uc := newTestUseCase(&fakeFacilityRepo{src: weekdayListSource(2)}, bookings, sink, m)

	resp, err := uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	require.NoError(t, err)

	assert.Equal(t, 28, resp.DaysInMonth)
	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16}, resp.TimeSlots)
	assert.Equal(t, []string{"9AM", "10AM", "11AM", "12PM", "1PM", "2PM", "3PM", "4PM"}, resp.HourLabels)
	assert.Equal(t, 9, resp.EarliestHour)
	assert.Equal(t, 17, resp.LatestHour)
	assert.Equal(t, openinghours.LayoutList, resp.Layout)

	// Одинаковая размерность сеток
	require.Len(t, resp.Availability, 8)
	require.Len(t, resp.Bookings, 8)
	for i := range resp.Availability {
		assert.Len(t, resp.Availability[i], 28)
		assert.Len(t, resp.Bookings[i], 28)
	}

	for d, dow := range resp.DayOfWeek {
		weekend := dow.Weekday == time.Saturday || dow.Weekday == time.Sunday
		for s := range resp.TimeSlots {
			if weekend {
				assert.Equal(t, 0.0, resp.Availability[s][d])
				assert.Equal(t, domain.CellClosed, resp.CellStatuses[s][d])
			} else {
				assert.Equal(t, 2.0, resp.Availability[s][d])
			}
		}
	}
	assert.Equal(t, 2.0*8*20, resp.TotalAvailable)

	assert.Equal(t, 2.0, resp.Bookings[0][2])
	assert.Equal(t, domain.CellAtCapacity, resp.CellStatuses[0][2])
	assert.Equal(t, 0.5, resp.Bookings[7][3])
	assert.Equal(t, domain.CellOpen, resp.CellStatuses[7][3])
	assert.Equal(t, 2.5, resp.TotalBooked)
	require.NotNil(t, resp.Utilization)
	assert.InDelta(t, 2.5/320, *resp.Utilization, 1e-12)

	require.NotNil(t, resp.Rows[0].Utilization)
	assert.InDelta(t, 2.0/40, *resp.Rows[0].Utilization, 1e-12)
	assert.Equal(t, "Saturday", resp.Days[0].Weekday)
	assert.Nil(t, resp.Days[0].Utilization)
	assert.Equal(t, 2.0, resp.Days[2].Booked)

	assert.Equal(t, domain.ReconciliationOK, resp.Reconciliation.Status)
	assert.Equal(t, 120.0, resp.Reconciliation.UnsplitTotal)

	assert.Equal(t, 8, resp.Diagnostics.Processed)
	assert.Equal(t, 4, resp.Diagnostics.Aggregated)
	assert.Equal(t, 1, resp.Diagnostics.Skipped[SkipOtherPeriod])
	assert.Equal(t, 1, resp.Diagnostics.Skipped[SkipOutsideHours])
	assert.Equal(t, 1, resp.Diagnostics.Skipped[SkipBadHours])
	assert.Equal(t, 1, resp.Diagnostics.Skipped[SkipIncomplete])

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "42", resp.ReportID)
	require.Len(t, sink.saved, 1)

	assert.Equal(t, 1, m.runs[runStatusOK])
	assert.Equal(t, 8, m.processed)
	assert.Equal(t, []string{"OK"}, m.reconciliations)
	assert.InDelta(t, 2.5/320, m.utilization["Riverside Padel"], 1e-12)
}

func TestExecute_InvalidPeriod(t *testing.T) {
	m := newFakeMetrics()
	uc := newTestUseCase(&fakeFacilityRepo{src: weekdayListSource(1)}, &fakeBookingRepo{}, nil, m)

	for _, code := range []string{"", "13/25", "1325"} {
		_, err := uc.Execute(context.Background(), &Request{PeriodCode: code})
		assert.ErrorIs(t, err, ErrInvalidInput, code)
	}
	assert.Equal(t, 3, m.runs[runStatusInvalid])
}

func TestExecute_ConfigurationError(t *testing.T) {
	m := newFakeMetrics()

	src := weekdayListSource(1)
	src.Capacity = nil
	uc := newTestUseCase(&fakeFacilityRepo{src: src}, &fakeBookingRepo{}, nil, m)

	_, err := uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, openinghours.ErrCapacityMissing)

	notFound := fmt.Errorf("%w: tab Settings", facility.ErrFacilityNotFound)
	uc = newTestUseCase(&fakeFacilityRepo{err: notFound}, &fakeBookingRepo{}, nil, m)
	_, err = uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	assert.ErrorIs(t, err, ErrConfiguration)

	missingTab := fmt.Errorf("%w: split", booking.ErrSourceNotFound)
	uc = newTestUseCase(&fakeFacilityRepo{src: weekdayListSource(1)}, &fakeBookingRepo{err: missingTab}, nil, m)
	_, err = uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	assert.ErrorIs(t, err, ErrConfiguration)

	assert.Equal(t, 3, m.runs[runStatusConfigError])
}

func TestExecute_MismatchDoesNotBlockReport(t *testing.T) {
	bookings := &fakeBookingRepo{
		totals: map[domain.BookingSource]float64{
			domain.SourceUnsplit: 120,
			domain.SourceSplit:   121,
		},
	}
	uc := newTestUseCase(&fakeFacilityRepo{src: weekdayListSource(1)}, bookings, nil, newFakeMetrics())

	resp, err := uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReconciliationMismatch, resp.Reconciliation.Status)
	assert.Equal(t, -1.0, resp.Reconciliation.Difference)
	assert.Empty(t, resp.ReportID)
}

func TestExecute_RepositoryAndSinkErrors(t *testing.T) {
	uc := newTestUseCase(&fakeFacilityRepo{src: weekdayListSource(1)},
		&fakeBookingRepo{err: errors.New("connection refused")}, nil, newFakeMetrics())
	_, err := uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	assert.ErrorIs(t, err, ErrInternal)

	uc = newTestUseCase(&fakeFacilityRepo{err: errors.New("i/o timeout")}, &fakeBookingRepo{}, nil, newFakeMetrics())
	_, err = uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	assert.ErrorIs(t, err, ErrInternal)

	uc = newTestUseCase(&fakeFacilityRepo{src: weekdayListSource(1)},
		&fakeBookingRepo{}, &fakeSink{err: errors.New("disk full")}, newFakeMetrics())
	_, err = uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DefaultScheduleRows(t *testing.T) {
	c := domain.NumberCell(1)
	src := &openinghours.Source{Capacity: &c, List: &openinghours.ListLayout{}}
	uc := newTestUseCase(&fakeFacilityRepo{src: src}, &fakeBookingRepo{}, nil, newFakeMetrics())

	resp, err := uc.Execute(context.Background(), &Request{PeriodCode: "0225"})
	require.NoError(t, err)

	assert.True(t, resp.Schedule.UsedDefaults)
	assert.Equal(t, openinghours.LayoutDefault, resp.Layout)
	require.Len(t, resp.TimeSlots, 16)
	assert.Equal(t, 8, resp.TimeSlots[0])
	assert.Equal(t, 23, resp.TimeSlots[15])
	// последний час по умолчанию закрыт (закрытие в 23)
	assert.Nil(t, resp.Rows[15].Utilization)
}
