package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	getUtilizationReportHandler "github.com/m04kA/SMC-UtilizationReport/internal/api/handlers/get_utilization_report"
	"github.com/m04kA/SMC-UtilizationReport/internal/api/middleware"
	"github.com/m04kA/SMC-UtilizationReport/internal/config"
	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
	sheetPostgres "github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet/postgres"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet/xlsx"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet/yamlbook"
	bookingRepo "github.com/m04kA/SMC-UtilizationReport/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-UtilizationReport/internal/infra/storage/facility"
	reportRepo "github.com/m04kA/SMC-UtilizationReport/internal/infra/storage/report"
	"github.com/m04kA/SMC-UtilizationReport/internal/service/openinghours"
	buildReportUC "github.com/m04kA/SMC-UtilizationReport/internal/usecase/build_report"
	"github.com/m04kA/SMC-UtilizationReport/pkg/dbmetrics"
	"github.com/m04kA/SMC-UtilizationReport/pkg/logger"
	"github.com/m04kA/SMC-UtilizationReport/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	period := flag.String("period", "", "build a single report for MMYY and exit")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-UtilizationReport...")
	log.Info("Configuration loaded from %s (source=%s, sink=%s)", *configPath, cfg.Source.Driver, cfg.Report.Sink)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var reportMetrics buildReportUC.Metrics = metrics.Nop{}
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		reportMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных, если она нужна источнику или приёмнику отчётов
	var executor dbmetrics.DBExecutor
	if cfg.NeedsDatabase() {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		executor = db
		if cfg.Metrics.Enabled {
			executor = dbmetrics.Wrap(db, metricsCollector)
			log.Info("Database metrics collection started")
		}
	}

	// Источник документа
	var reader sheet.Reader
	switch cfg.Source.Driver {
	case config.DriverXLSX:
		reader = xlsx.NewReader(cfg.Source.Path)
	case config.DriverYAML:
		reader = yamlbook.NewReader(cfg.Source.Path)
	case config.DriverPostgres:
		reader = sheetPostgres.NewReader(executor)
	}
	log.Info("Sheet source initialized (driver=%s, path=%s)", cfg.Source.Driver, cfg.Source.Path)

	// Инициализируем репозитории
	facilityRepository, err := facilityRepo.NewRepository(reader, facilityRepo.Config{
		Tab:          cfg.Sheet.SettingsTab,
		NameCell:     cfg.Sheet.NameCell,
		CapacityCell: cfg.Sheet.CapacityCell,
		ListRange:    cfg.Sheet.ListRange,
		GridRange:    cfg.Sheet.GridRange,
	})
	if err != nil {
		log.Fatal("Failed to initialize facility repository: %v", err)
	}

	bookingRepository, err := bookingRepo.NewRepository(reader, bookingRepo.Config{
		UnsplitTab:  cfg.Sheet.UnsplitTab,
		SplitTab:    cfg.Sheet.SplitTab,
		FirstRow:    cfg.Sheet.FirstRow,
		DateColumn:  cfg.Sheet.DateColumn,
		StartColumn: cfg.Sheet.StartColumn,
		EndColumn:   cfg.Sheet.EndColumn,
		HoursColumn: cfg.Sheet.HoursColumn,
	})
	if err != nil {
		log.Fatal("Failed to initialize booking repository: %v", err)
	}

	var sink buildReportUC.ReportSink
	switch cfg.Report.Sink {
	case config.SinkFile:
		sink = reportRepo.NewFileRepository(cfg.Report.Dir)
	case config.SinkPostgres:
		sink = reportRepo.NewPostgresRepository(executor)
	}

	// Инициализируем сервисы и use cases
	scheduleSvc := openinghours.NewService(log)

	buildReportUseCase := buildReportUC.NewUseCase(
		facilityRepository,
		bookingRepository,
		scheduleSvc,
		sink,
		reportMetrics,
		log,
	)

	// Разовый запуск из командной строки
	if *period != "" {
		code := runOnce(buildReportUseCase, *period, log)
		log.Close()
		os.Exit(code)
	}

	// Инициализируем handlers
	getUtilizationReport := getUtilizationReportHandler.NewHandler(buildReportUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Построение месячного отчёта об использовании площадки
	api.HandleFunc("/reports/utilization", getUtilizationReport.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// runOnce строит один отчёт, печатает его в stdout и возвращает код выхода
func runOnce(uc *buildReportUC.UseCase, period string, log *logger.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resp, err := uc.Execute(ctx, &buildReportUC.Request{PeriodCode: period})
	if err != nil {
		log.Error("Report failed: period=%s, error=%v", period, err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(getUtilizationReportHandler.FromUseCaseResponse(resp)); err != nil {
		log.Error("Failed to print report: %v", err)
		return 1
	}

	if resp.Reconciliation.Status == domain.ReconciliationMismatch {
		log.Warn("Report built with hours mismatch: unsplit=%.2f split=%.2f",
			resp.Reconciliation.UnsplitTotal, resp.Reconciliation.SplitTotal)
	}
	log.Info("Report built: period=%s, run_id=%s, report_id=%s", period, resp.RunID, resp.ReportID)
	return 0
}
