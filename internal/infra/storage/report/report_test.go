package report

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/service/openinghours"
	"github.com/m04kA/SMC-UtilizationReport/internal/usecase/build_report"
)

func sampleResponse() *build_report.Response {
	u := 0.25
	return &build_report.Response{
		RunID:          "4f1c2a9e-0000-4000-8000-000000000001",
		GeneratedAt:    time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC),
		Period:         domain.Period{Month: 2, Year: 2025},
		Facility:       domain.FacilityConfig{Name: "Riverside Padel", CapacityPerHour: 2},
		Layout:         openinghours.LayoutList,
		Schedule:       domain.NewWeeklySchedule(),
		DaysInMonth:    2,
		EarliestHour:   9,
		LatestHour:     10,
		TimeSlots:      []int{9},
		HourLabels:     []string{"9AM"},
		Availability:   domain.Grid{{2, 2}},
		Bookings:       domain.Grid{{1, 0}},
		CellStatuses:   [][]domain.CellStatus{{domain.CellOpen, domain.CellOpen}},
		TotalBooked:    1,
		TotalAvailable: 4,
		Utilization:    &u,
		Reconciliation: build_report.Reconciliation{
			Status:       domain.ReconciliationOK,
			UnsplitTotal: 1,
			SplitTotal:   1,
		},
		Diagnostics: build_report.AggregationStats{
			Processed:  3,
			Aggregated: 1,
			Skipped:    map[build_report.SkipReason]int{build_report.SkipOtherPeriod: 2},
		},
	}
}

func TestFromResponse(t *testing.T) {
	doc := FromResponse(sampleResponse())

	assert.Equal(t, "0225", doc.Period)
	assert.Equal(t, "list", doc.Layout)
	assert.Equal(t, "OK", doc.Reconciliation.Status)
	assert.Equal(t, map[string]int{"other_period": 2}, doc.Skipped)
	require.NotNil(t, doc.Utilization)
	assert.Equal(t, 0.25, *doc.Utilization)
}

func TestPostgresRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO utilization_reports \(run_id,period,facility,utilization,reconciliation_status,payload,generated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7\) RETURNING id`).
		WithArgs("4f1c2a9e-0000-4000-8000-000000000001", "0225", "Riverside Padel",
			sqlmock.AnyArg(), "OK", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))

	id, err := NewPostgresRepository(db).Save(context.Background(), sampleResponse())
	require.NoError(t, err)
	assert.Equal(t, "17", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO utilization_reports`).WillReturnError(errors.New("relation does not exist"))

	_, err = NewPostgresRepository(db).Save(context.Background(), sampleResponse())
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestFileRepository_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := NewFileRepository(dir).Save(context.Background(), sampleResponse())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "utilization-0225-4f1c2a9e-0000-4000-8000-000000000001.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "Riverside Padel", doc.Facility)
	assert.Equal(t, [][]float64{{2, 2}}, doc.Availability)
	assert.Equal(t, 4.0, doc.TotalAvailable)

	// JSON представление совпадает по содержанию
	raw, err := json.Marshal(FromResponse(sampleResponse()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"capacityPerHour":2`)
}
