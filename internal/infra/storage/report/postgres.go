package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-UtilizationReport/internal/usecase/build_report"
	"github.com/m04kA/SMC-UtilizationReport/pkg/dbmetrics"
	"github.com/m04kA/SMC-UtilizationReport/pkg/psqlbuilder"
)

// PostgresRepository сохраняет отчёты в таблицу utilization_reports
type PostgresRepository struct {
	db DBExecutor
}

// NewPostgresRepository создает новый экземпляр репозитория отчётов
func NewPostgresRepository(db DBExecutor) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save сохраняет отчёт и возвращает его id
func (r *PostgresRepository) Save(ctx context.Context, resp *build_report.Response) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	doc := FromResponse(resp)
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: Save - marshal payload: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("utilization_reports").
		Columns(
			"run_id",
			"period",
			"facility",
			"utilization",
			"reconciliation_status",
			"payload",
			"generated_at",
		).
		Values(
			doc.RunID,
			doc.Period,
			doc.Facility,
			doc.Utilization,
			doc.Reconciliation.Status,
			string(payload),
			doc.GeneratedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	return strconv.FormatInt(id, 10), nil
}
