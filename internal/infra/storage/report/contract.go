package report

import "github.com/m04kA/SMC-UtilizationReport/pkg/dbmetrics"

// DBExecutor интерфейс подключения к БД (*sql.DB или *dbmetrics.DB)
type DBExecutor = dbmetrics.DBExecutor
