package get_utilization_report

import (
	"time"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	buildReport "github.com/m04kA/SMC-UtilizationReport/internal/usecase/build_report"
)

// UtilizationReportResponse HTTP response model
type UtilizationReportResponse struct {
	RunID          string                 `json:"runId"`
	ReportID       string                 `json:"reportId,omitempty"`
	Period         string                 `json:"period"`
	GeneratedAt    string                 `json:"generatedAt"`
	Facility       FacilityResponse       `json:"facility"`
	Schedule       []OpeningHours         `json:"schedule"`
	DaysInMonth    int                    `json:"daysInMonth"`
	Days           []DayResponse          `json:"days"`
	Rows           []RowResponse          `json:"rows"`
	TotalBooked    float64                `json:"totalBooked"`
	TotalAvailable float64                `json:"totalAvailable"`
	Utilization    *float64               `json:"utilization"`
	Reconciliation ReconciliationResponse `json:"reconciliation"`
	Diagnostics    DiagnosticsResponse    `json:"diagnostics"`
}

// FacilityResponse площадка и источник расписания
type FacilityResponse struct {
	Name            string  `json:"name"`
	CapacityPerHour float64 `json:"capacityPerHour"`
	Layout          string  `json:"layout"`
	UsedDefaults    bool    `json:"usedDefaults"`
	EarliestHour    int     `json:"earliestHour"`
	LatestHour      int     `json:"latestHour"`
}

// OpeningHours часы работы в один день недели
type OpeningHours struct {
	Weekday string `json:"weekday"`
	Open    int    `json:"open"`
	Close   int    `json:"close"`
}

// DayResponse столбец отчёта
type DayResponse struct {
	Day         int      `json:"day"`
	Weekday     string   `json:"weekday"`
	Booked      float64  `json:"booked"`
	Available   float64  `json:"available"`
	Utilization *float64 `json:"utilization"`
}

// RowResponse строка отчёта: час и ячейки по дням месяца
type RowResponse struct {
	Hour        int            `json:"hour"`
	Label       string         `json:"label"`
	Booked      float64        `json:"booked"`
	Available   float64        `json:"available"`
	Utilization *float64       `json:"utilization"`
	Cells       []CellResponse `json:"cells"`
}

// CellResponse ячейка отчёта
type CellResponse struct {
	Booked    float64 `json:"booked"`
	Available float64 `json:"available"`
	Status    string  `json:"status"`
}

// ReconciliationResponse результат сверки итогов
type ReconciliationResponse struct {
	Status       string  `json:"status"`
	UnsplitTotal float64 `json:"unsplitTotal"`
	SplitTotal   float64 `json:"splitTotal"`
	Difference   float64 `json:"difference"`
}

// DiagnosticsResponse статистика агрегации
type DiagnosticsResponse struct {
	Processed  int            `json:"processed"`
	Aggregated int            `json:"aggregated"`
	Skipped    map[string]int `json:"skipped"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *buildReport.Response) *UtilizationReportResponse {
	out := &UtilizationReportResponse{
		RunID:       resp.RunID,
		ReportID:    resp.ReportID,
		Period:      resp.Period.Code(),
		GeneratedAt: resp.GeneratedAt.Format(time.RFC3339),
		Facility: FacilityResponse{
			Name:            resp.Facility.Name,
			CapacityPerHour: resp.Facility.CapacityPerHour,
			Layout:          string(resp.Layout),
			EarliestHour:    resp.EarliestHour,
			LatestHour:      resp.LatestHour,
		},
		Schedule:       make([]OpeningHours, 0, 7),
		DaysInMonth:    resp.DaysInMonth,
		Days:           make([]DayResponse, len(resp.Days)),
		Rows:           make([]RowResponse, len(resp.Rows)),
		TotalBooked:    resp.TotalBooked,
		TotalAvailable: resp.TotalAvailable,
		Utilization:    resp.Utilization,
		Reconciliation: ReconciliationResponse{
			Status:       string(resp.Reconciliation.Status),
			UnsplitTotal: resp.Reconciliation.UnsplitTotal,
			SplitTotal:   resp.Reconciliation.SplitTotal,
			Difference:   resp.Reconciliation.Difference,
		},
		Diagnostics: DiagnosticsResponse{
			Processed:  resp.Diagnostics.Processed,
			Aggregated: resp.Diagnostics.Aggregated,
			Skipped:    make(map[string]int, len(resp.Diagnostics.Skipped)),
		},
	}

	if resp.Schedule != nil {
		out.Facility.UsedDefaults = resp.Schedule.UsedDefaults
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if iv, ok := resp.Schedule.Interval(wd); ok {
				out.Schedule = append(out.Schedule, OpeningHours{Weekday: wd.String(), Open: iv.Open, Close: iv.Close})
			}
		}
	}

	for i, d := range resp.Days {
		out.Days[i] = DayResponse{
			Day:         d.Day,
			Weekday:     d.Weekday,
			Booked:      d.Booked,
			Available:   d.Available,
			Utilization: d.Utilization,
		}
	}

	for i, row := range resp.Rows {
		cells := make([]CellResponse, resp.DaysInMonth)
		for d := range cells {
			cells[d] = CellResponse{
				Booked:    resp.Bookings[i][d],
				Available: resp.Availability[i][d],
				Status:    string(cellStatus(resp.CellStatuses, i, d)),
			}
		}
		out.Rows[i] = RowResponse{
			Hour:        row.Hour,
			Label:       row.Label,
			Booked:      row.Booked,
			Available:   row.Available,
			Utilization: row.Utilization,
			Cells:       cells,
		}
	}

	for reason, n := range resp.Diagnostics.Skipped {
		out.Diagnostics.Skipped[string(reason)] = n
	}

	return out
}

func cellStatus(statuses [][]domain.CellStatus, row, day int) domain.CellStatus {
	if row < len(statuses) && day < len(statuses[row]) {
		return statuses[row][day]
	}
	return domain.CellClosed
}
