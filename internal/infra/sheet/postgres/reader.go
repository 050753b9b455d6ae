package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
	"github.com/m04kA/SMC-UtilizationReport/pkg/dbmetrics"
	"github.com/m04kA/SMC-UtilizationReport/pkg/psqlbuilder"
)

// Reader читает ячейки документа, выгруженного в PostgreSQL
//
// Схема:
//
//	sheet_tabs(name text primary key)
//	sheet_cells(tab text, row_num int, col_num int,
//	            text_value text, number_value double precision, time_value timestamptz)
//
// В sheet_cells хранятся только непустые ячейки; заполнено ровно одно из *_value.
// time_value хранит настенное время документа в UTC.
type Reader struct {
	db DBExecutor
}

// NewReader создает новый экземпляр reader
func NewReader(db DBExecutor) *Reader {
	return &Reader{db: db}
}

// ReadRange читает диапазон rng вкладки tab
func (r *Reader) ReadRange(ctx context.Context, tab string, rng sheet.Range) ([][]domain.Cell, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.ensureTab(ctx, executor, tab); err != nil {
		return nil, err
	}

	builder := psqlbuilder.Select(
		"row_num",
		"col_num",
		"text_value",
		"number_value",
		"time_value",
	).
		From("sheet_cells").
		Where(squirrel.Eq{"tab": tab}).
		Where(squirrel.GtOrEq{"row_num": rng.FromRow}).
		Where(squirrel.GtOrEq{"col_num": rng.FromCol}).
		Where(squirrel.LtOrEq{"col_num": rng.ToCol})

	if !rng.OpenEnded() {
		builder = builder.Where(squirrel.LtOrEq{"row_num": rng.ToRow})
	}

	query, args, err := builder.OrderBy("row_num", "col_num").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReadRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReadRange - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	collector := sheet.NewCollector(rng)
	for rows.Next() {
		var (
			rowNum, colNum int
			text           sql.NullString
			number         sql.NullFloat64
			ts             sql.NullTime
		)
		if err := rows.Scan(&rowNum, &colNum, &text, &number, &ts); err != nil {
			return nil, fmt.Errorf("%w: ReadRange - scan row: %v", ErrScanRow, err)
		}
		collector.Put(rowNum, colNum, toCell(text, number, ts))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReadRange - iterate rows: %v", ErrExecQuery, err)
	}

	return collector.Matrix(), nil
}

func (r *Reader) ensureTab(ctx context.Context, executor DBExecutor, tab string) error {
	query, args, err := psqlbuilder.Select("1").
		From("sheet_tabs").
		Where(squirrel.Eq{"name": tab}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ensureTab - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %q", sheet.ErrTabNotFound, tab)
	}
	if err != nil {
		return fmt.Errorf("%w: ensureTab - execute select: %v", ErrExecQuery, err)
	}
	return nil
}

func toCell(text sql.NullString, number sql.NullFloat64, ts sql.NullTime) domain.Cell {
	switch {
	case ts.Valid:
		// время в документе настенное, сессия может вернуть его в другом часовом поясе
		return domain.TimeCell(ts.Time.UTC())
	case number.Valid:
		return domain.NumberCell(number.Float64)
	case text.Valid:
		return domain.TextCell(text.String)
	default:
		return domain.Cell{}
	}
}
