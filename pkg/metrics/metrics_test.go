package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ReportCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("utilization-report", reg)

	m.RecordReportRun("ok", 120*time.Millisecond)
	m.RecordReportRun("ok", 80*time.Millisecond)
	m.RecordReportRun("config_error", time.Millisecond)
	m.RecordRows(10, map[string]int{"other_period": 3, "outside_hours": 1})
	m.RecordRows(5, map[string]int{"other_period": 2})
	m.RecordReconciliation("Mismatch")
	m.SetUtilization("Riverside Padel", 0.42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reportRunsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportRunsTotal.WithLabelValues("config_error")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.rowsProcessedTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.rowsSkippedTotal.WithLabelValues("other_period")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reconciliationTotal.WithLabelValues("Mismatch")))
	assert.Equal(t, 0.42, testutil.ToFloat64(m.utilization.WithLabelValues("Riverside Padel")))
}

func TestMetrics_HTTPAndDB(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("utilization-report", reg)

	m.RecordHTTPRequest(http.MethodGet, "/api/v1/reports/utilization", http.StatusOK, 10*time.Millisecond)
	m.RecordDBQuery("query", time.Millisecond, nil)
	m.RecordDBQuery("query", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/reports/utilization", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbErrorsTotal.WithLabelValues("query")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.dbQueryDuration))
}
