package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
)

// Config расположение списков бронирований в документе
type Config struct {
	UnsplitTab  string
	SplitTab    string
	FirstRow    int // первая строка данных (после заголовка)
	DateColumn  string
	StartColumn string
	EndColumn   string
	HoursColumn string
}

// columns номера столбцов записи бронирования
type columns struct {
	date, start, end, hours int
}

// Repository репозиторий бронирований
type Repository struct {
	reader   SheetReader
	tabs     map[domain.BookingSource]string
	firstRow int
	cols     columns
	minCol   int
	maxCol   int
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(reader SheetReader, cfg Config) (*Repository, error) {
	if cfg.UnsplitTab == "" || cfg.SplitTab == "" {
		return nil, fmt.Errorf("%w: booking tabs must be set", ErrInvalidConfig)
	}
	if cfg.FirstRow < 1 {
		return nil, fmt.Errorf("%w: first row %d", ErrInvalidConfig, cfg.FirstRow)
	}

	var cols columns
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{cfg.DateColumn, &cols.date},
		{cfg.StartColumn, &cols.start},
		{cfg.EndColumn, &cols.end},
		{cfg.HoursColumn, &cols.hours},
	} {
		n, err := sheet.ColumnNumber(c.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		*c.dst = n
	}

	repo := &Repository{
		reader: reader,
		tabs: map[domain.BookingSource]string{
			domain.SourceUnsplit: cfg.UnsplitTab,
			domain.SourceSplit:   cfg.SplitTab,
		},
		firstRow: cfg.FirstRow,
		cols:     cols,
		minCol:   min(cols.date, cols.start, cols.end, cols.hours),
		maxCol:   max(cols.date, cols.start, cols.end, cols.hours),
	}
	return repo, nil
}

// ListRecords читает строки бронирований указанного списка
// Полностью пустые строки пропускаются; частично заполненные возвращаются как есть.
func (r *Repository) ListRecords(ctx context.Context, source domain.BookingSource) ([]*domain.BookingRecord, error) {
	rng := sheet.Range{FromRow: r.firstRow, FromCol: r.minCol, ToCol: r.maxCol}
	cells, err := r.read(ctx, source, rng)
	if err != nil {
		return nil, err
	}

	records := make([]*domain.BookingRecord, 0, len(cells))
	for i, row := range cells {
		rec := &domain.BookingRecord{
			Row:       r.firstRow + i,
			Date:      row[r.cols.date-r.minCol],
			StartTime: row[r.cols.start-r.minCol],
			EndTime:   row[r.cols.end-r.minCol],
			Hours:     row[r.cols.hours-r.minCol],
		}
		if rec.Date.IsEmpty() && rec.StartTime.IsEmpty() && rec.EndTime.IsEmpty() && rec.Hours.IsEmpty() {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// SumHours суммирует столбец часов указанного списка
// Нечисловые значения пропускаются, как при суммировании столбца в электронной таблице.
func (r *Repository) SumHours(ctx context.Context, source domain.BookingSource) (float64, error) {
	rng := sheet.Range{FromRow: r.firstRow, FromCol: r.cols.hours, ToCol: r.cols.hours}
	cells, err := r.read(ctx, source, rng)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, row := range cells {
		if v, ok := domain.ParseNumber(row[0]); ok {
			total += v
		}
	}
	return total, nil
}

func (r *Repository) read(ctx context.Context, source domain.BookingSource, rng sheet.Range) ([][]domain.Cell, error) {
	tab, ok := r.tabs[source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	cells, err := r.reader.ReadRange(ctx, tab, rng)
	if errors.Is(err, sheet.ErrTabNotFound) {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, source, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s!%s: %v", ErrReadBookings, tab, rng, err)
	}
	return cells, nil
}
