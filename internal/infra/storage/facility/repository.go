package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
	"github.com/m04kA/SMC-UtilizationReport/internal/service/openinghours"
)

// Config расположение настроек площадки в документе
// ListRange и GridRange можно оставить пустыми, если раскладка не используется.
type Config struct {
	Tab          string
	NameCell     string
	CapacityCell string
	ListRange    string
	GridRange    string
}

// Repository репозиторий конфигурации площадки
type Repository struct {
	reader   SheetReader
	tab      string
	name     sheet.Range
	capacity sheet.Range
	list     *sheet.Range
	grid     *sheet.Range
}

// NewRepository создает новый экземпляр репозитория конфигурации площадки
func NewRepository(reader SheetReader, cfg Config) (*Repository, error) {
	if cfg.Tab == "" {
		return nil, fmt.Errorf("%w: settings tab is empty", ErrInvalidConfig)
	}

	name, err := sheet.ParseRange(cfg.NameCell)
	if err != nil {
		return nil, fmt.Errorf("%w: name cell: %v", ErrInvalidConfig, err)
	}
	capacity, err := sheet.ParseRange(cfg.CapacityCell)
	if err != nil {
		return nil, fmt.Errorf("%w: capacity cell: %v", ErrInvalidConfig, err)
	}

	repo := &Repository{reader: reader, tab: cfg.Tab, name: name, capacity: capacity}

	if cfg.ListRange != "" {
		rng, err := sheet.ParseRange(cfg.ListRange)
		if err != nil {
			return nil, fmt.Errorf("%w: list range: %v", ErrInvalidConfig, err)
		}
		if rng.OpenEnded() || rng.Cols() < 2 {
			return nil, fmt.Errorf("%w: list range %s must be closed and have 2 columns", ErrInvalidConfig, cfg.ListRange)
		}
		repo.list = &rng
	}

	if cfg.GridRange != "" {
		rng, err := sheet.ParseRange(cfg.GridRange)
		if err != nil {
			return nil, fmt.Errorf("%w: grid range: %v", ErrInvalidConfig, err)
		}
		if rng.OpenEnded() || rng.ToRow-rng.FromRow+1 != domain.GridLayoutRows || rng.Cols() != domain.GridLayoutCols {
			return nil, fmt.Errorf("%w: grid range %s must be %dx%d", ErrInvalidConfig,
				cfg.GridRange, domain.GridLayoutRows, domain.GridLayoutCols)
		}
		repo.grid = &rng
	}

	return repo, nil
}

// GetSource читает сырые настройки площадки
// Значения читаются заново на каждый вызов, кэш между запусками не ведётся.
func (r *Repository) GetSource(ctx context.Context) (*openinghours.Source, error) {
	nameCell, err := r.readCell(ctx, r.name)
	if err != nil {
		return nil, err
	}
	capacityCell, err := r.readCell(ctx, r.capacity)
	if err != nil {
		return nil, err
	}

	src := &openinghours.Source{
		Name:     nameCell,
		Capacity: &capacityCell,
	}

	if r.list != nil {
		cells, err := r.read(ctx, *r.list)
		if err != nil {
			return nil, err
		}
		layout := &openinghours.ListLayout{Rows: make([]openinghours.ListRow, 0, len(cells))}
		for _, row := range cells {
			layout.Rows = append(layout.Rows, openinghours.ListRow{Day: row[0], Hours: row[1]})
		}
		src.List = layout
	}

	if r.grid != nil {
		cells, err := r.read(ctx, *r.grid)
		if err != nil {
			return nil, err
		}
		src.Grid = &openinghours.GridLayout{Cells: cells}
	}

	return src, nil
}

func (r *Repository) readCell(ctx context.Context, rng sheet.Range) (domain.Cell, error) {
	cells, err := r.read(ctx, rng)
	if err != nil {
		return domain.Cell{}, err
	}
	if len(cells) == 0 || len(cells[0]) == 0 {
		return domain.Cell{}, nil
	}
	return cells[0][0], nil
}

func (r *Repository) read(ctx context.Context, rng sheet.Range) ([][]domain.Cell, error) {
	cells, err := r.reader.ReadRange(ctx, r.tab, rng)
	if errors.Is(err, sheet.ErrTabNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrFacilityNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s!%s: %v", ErrReadSettings, r.tab, rng, err)
	}
	return cells, nil
}
