package get_utilization_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-UtilizationReport/internal/api/handlers"
	buildReport "github.com/m04kA/SMC-UtilizationReport/internal/usecase/build_report"
)

const (
	msgMissingPeriod      = "период обязателен (формат MMYY)"
	msgInvalidPeriod      = "некорректный период, ожидается MMYY"
	msgConfigurationError = "конфигурация площадки некорректна или отсутствует"
)

type Handler struct {
	useCase BuildReportUseCase
	logger  Logger
}

func NewHandler(useCase BuildReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/utilization
// Query params: period (required, MMYY)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		h.logger.Warn("GET /reports/utilization - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &buildReport.Request{PeriodCode: period})
	if err != nil {
		switch {
		case errors.Is(err, buildReport.ErrInvalidInput):
			h.logger.Warn("GET /reports/utilization - Invalid period: period=%q, error=%v", period, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, buildReport.ErrConfiguration):
			h.logger.Error("GET /reports/utilization - Configuration error: period=%s, error=%v", period, err)
			handlers.RespondUnprocessable(w, msgConfigurationError)

		default:
			h.logger.Error("GET /reports/utilization - Failed to build report: period=%s, error=%v", period, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /reports/utilization - Report built successfully: period=%s, run_id=%s, reconciliation=%s",
		period, result.RunID, result.Reconciliation.Status)
	handlers.RespondJSON(w, http.StatusOK, response)
}
