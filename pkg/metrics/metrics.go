package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор Prometheus метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbErrorsTotal       *prometheus.CounterVec

	reportRunsTotal     *prometheus.CounterVec
	reportRunDuration   prometheus.Histogram
	rowsProcessedTotal  prometheus.Counter
	rowsSkippedTotal    *prometheus.CounterVec
	reconciliationTotal *prometheus.CounterVec
	utilization         *prometheus.GaugeVec
}

// New создает коллектор и регистрирует его в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает коллектор и регистрирует его в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		dbErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		reportRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "utilization_report_runs_total",
			Help:        "Report runs by final status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		reportRunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "utilization_report_duration_seconds",
			Help:        "Report run duration",
			ConstLabels: constLabels,
			Buckets:     []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		rowsProcessedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "utilization_report_booking_rows_total",
			Help:        "Booking rows examined by the aggregator",
			ConstLabels: constLabels,
		}),
		rowsSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "utilization_report_booking_rows_skipped_total",
			Help:        "Booking rows skipped by the aggregator",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		reconciliationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "utilization_report_reconciliation_total",
			Help:        "Hours reconciliation results",
			ConstLabels: constLabels,
		}, []string{"status"}),
		utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "utilization_report_last_utilization_ratio",
			Help:        "Overall utilization of the last generated report",
			ConstLabels: constLabels,
		}, []string{"facility"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbErrorsTotal,
		m.reportRunsTotal,
		m.reportRunDuration,
		m.rowsProcessedTotal,
		m.rowsSkippedTotal,
		m.reconciliationTotal,
		m.utilization,
	)

	return m
}

// RecordHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBQuery учитывает выполненный запрос к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// RecordReportRun учитывает завершённый запуск построения отчёта
func (m *Metrics) RecordReportRun(status string, duration time.Duration) {
	m.reportRunsTotal.WithLabelValues(status).Inc()
	m.reportRunDuration.Observe(duration.Seconds())
}

// RecordRows учитывает просмотренные и пропущенные строки бронирований
func (m *Metrics) RecordRows(processed int, skipped map[string]int) {
	m.rowsProcessedTotal.Add(float64(processed))
	for reason, n := range skipped {
		m.rowsSkippedTotal.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordReconciliation учитывает результат сверки итогов
func (m *Metrics) RecordReconciliation(status string) {
	m.reconciliationTotal.WithLabelValues(status).Inc()
}

// SetUtilization выставляет общую загрузку последнего отчёта
func (m *Metrics) SetUtilization(facility string, value float64) {
	m.utilization.WithLabelValues(facility).Set(value)
}
