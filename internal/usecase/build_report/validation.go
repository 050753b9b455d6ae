package build_report

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает период отчёта
func validateRequest(req *Request) (domain.Period, error) {
	if req == nil {
		return domain.Period{}, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	code := strings.TrimSpace(req.PeriodCode)
	if code == "" {
		return domain.Period{}, fmt.Errorf("%w: period is required", ErrInvalidInput)
	}

	period, err := domain.ParsePeriod(code)
	if err != nil {
		return domain.Period{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return period, nil
}
