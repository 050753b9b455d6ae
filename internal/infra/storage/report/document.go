package report

import (
	"time"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/usecase/build_report"
)

// Document сохраняемое представление отчёта
type Document struct {
	RunID          string                `json:"runId" yaml:"run_id"`
	Period         string                `json:"period" yaml:"period"`
	GeneratedAt    time.Time             `json:"generatedAt" yaml:"generated_at"`
	Facility       string                `json:"facility" yaml:"facility"`
	Capacity       float64               `json:"capacityPerHour" yaml:"capacity_per_hour"`
	Layout         string                `json:"layout" yaml:"layout"`
	UsedDefaults   bool                  `json:"usedDefaults" yaml:"used_defaults"`
	DaysInMonth    int                   `json:"daysInMonth" yaml:"days_in_month"`
	EarliestHour   int                   `json:"earliestHour" yaml:"earliest_hour"`
	LatestHour     int                   `json:"latestHour" yaml:"latest_hour"`
	HourLabels     []string              `json:"hourLabels" yaml:"hour_labels"`
	Availability   [][]float64           `json:"availability" yaml:"availability,flow"`
	Bookings       [][]float64           `json:"bookings" yaml:"bookings,flow"`
	Statuses       [][]domain.CellStatus `json:"statuses" yaml:"statuses,flow"`
	TotalBooked    float64               `json:"totalBooked" yaml:"total_booked"`
	TotalAvailable float64               `json:"totalAvailable" yaml:"total_available"`
	Utilization    *float64              `json:"utilization" yaml:"utilization"`
	Reconciliation ReconciliationDoc     `json:"reconciliation" yaml:"reconciliation"`
	Skipped        map[string]int        `json:"skipped" yaml:"skipped"`
}

// ReconciliationDoc результат сверки в сохраняемом отчёте
type ReconciliationDoc struct {
	Status       string  `json:"status" yaml:"status"`
	UnsplitTotal float64 `json:"unsplitTotal" yaml:"unsplit_total"`
	SplitTotal   float64 `json:"splitTotal" yaml:"split_total"`
}

// FromResponse строит документ из результата use case
func FromResponse(r *build_report.Response) *Document {
	skipped := make(map[string]int, len(r.Diagnostics.Skipped))
	for reason, n := range r.Diagnostics.Skipped {
		skipped[string(reason)] = n
	}

	return &Document{
		RunID:          r.RunID,
		Period:         r.Period.Code(),
		GeneratedAt:    r.GeneratedAt,
		Facility:       r.Facility.Name,
		Capacity:       r.Facility.CapacityPerHour,
		Layout:         string(r.Layout),
		UsedDefaults:   r.Schedule != nil && r.Schedule.UsedDefaults,
		DaysInMonth:    r.DaysInMonth,
		EarliestHour:   r.EarliestHour,
		LatestHour:     r.LatestHour,
		HourLabels:     r.HourLabels,
		Availability:   r.Availability,
		Bookings:       r.Bookings,
		Statuses:       r.CellStatuses,
		TotalBooked:    r.TotalBooked,
		TotalAvailable: r.TotalAvailable,
		Utilization:    r.Utilization,
		Reconciliation: ReconciliationDoc{
			Status:       string(r.Reconciliation.Status),
			UnsplitTotal: r.Reconciliation.UnsplitTotal,
			SplitTotal:   r.Reconciliation.SplitTotal,
		},
		Skipped: skipped,
	}
}
