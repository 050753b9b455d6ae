package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
)

// Драйверы источника документа
const (
	DriverXLSX     = "xlsx"
	DriverYAML     = "yaml"
	DriverPostgres = "postgres"
)

// Приёмники готового отчёта
const (
	SinkNone     = "none"
	SinkFile     = "file"
	SinkPostgres = "postgres"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация приложения
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Database DatabaseConfig `toml:"database"`
	Source   SourceConfig   `toml:"source"`
	Sheet    SheetConfig    `toml:"sheet"`
	Report   ReportConfig   `toml:"report"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к БД
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// SourceConfig источник документа с бронированиями
type SourceConfig struct {
	Driver string `toml:"driver"` // xlsx | yaml | postgres
	Path   string `toml:"path"`   // путь к файлу книги для xlsx и yaml
}

// SheetConfig расположение данных в документе
type SheetConfig struct {
	SettingsTab  string `toml:"settings_tab"`
	NameCell     string `toml:"name_cell"`
	CapacityCell string `toml:"capacity_cell"`
	ListRange    string `toml:"list_range"`
	GridRange    string `toml:"grid_range"`

	UnsplitTab  string `toml:"unsplit_tab"`
	SplitTab    string `toml:"split_tab"`
	FirstRow    int    `toml:"first_row"`
	DateColumn  string `toml:"date_column"`
	StartColumn string `toml:"start_column"`
	EndColumn   string `toml:"end_column"`
	HoursColumn string `toml:"hours_column"`
}

// ReportConfig куда сохранять готовый отчёт
type ReportConfig struct {
	Sink string `toml:"sink"` // none | file | postgres
	Dir  string `toml:"dir"`
}

// Load загружает конфигурацию из TOML файла
// Перед чтением подгружается .env (если есть); DB_PASSWORD и SOURCE_PATH переопределяют значения файла.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("SOURCE_PATH"); v != "" {
		cfg.Source.Path = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "utilization-report",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Source: SourceConfig{Driver: DriverXLSX},
		Sheet: SheetConfig{
			SettingsTab:  "Settings",
			NameCell:     "B1",
			CapacityCell: "B2",
			ListRange:    "A4:B20",
			GridRange:    "D4:K6",
			UnsplitTab:   "Bookings",
			SplitTab:     "Bookings (split)",
			FirstRow:     2,
			DateColumn:   "A",
			StartColumn:  "B",
			EndColumn:    "C",
			HoursColumn:  "D",
		},
		Report: ReportConfig{Sink: SinkNone, Dir: "reports"},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	switch c.Source.Driver {
	case DriverXLSX, DriverYAML:
		if c.Source.Path == "" {
			problems = append(problems, fmt.Sprintf("source.path is required for driver %q", c.Source.Driver))
		}
	case DriverPostgres:
	default:
		problems = append(problems, fmt.Sprintf("unknown source.driver %q", c.Source.Driver))
	}

	switch c.Report.Sink {
	case SinkNone, SinkPostgres:
	case SinkFile:
		if c.Report.Dir == "" {
			problems = append(problems, "report.dir is required for file sink")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown report.sink %q", c.Report.Sink))
	}

	for name, value := range map[string]string{
		"sheet.name_cell":     c.Sheet.NameCell,
		"sheet.capacity_cell": c.Sheet.CapacityCell,
	} {
		if _, err := sheet.ParseRange(value); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
	}
	for name, value := range map[string]string{
		"sheet.list_range": c.Sheet.ListRange,
		"sheet.grid_range": c.Sheet.GridRange,
	} {
		if value == "" {
			continue
		}
		if _, err := sheet.ParseRange(value); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if c.Sheet.ListRange == "" && c.Sheet.GridRange == "" {
		problems = append(problems, "at least one of sheet.list_range and sheet.grid_range is required")
	}

	if c.Sheet.SettingsTab == "" || c.Sheet.UnsplitTab == "" || c.Sheet.SplitTab == "" {
		problems = append(problems, "sheet tabs must not be empty")
	}
	if c.Sheet.FirstRow < 1 {
		problems = append(problems, "sheet.first_row must be >= 1")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// NeedsDatabase true, если источнику или приёмнику нужен PostgreSQL
func (c *Config) NeedsDatabase() bool {
	return c.Source.Driver == DriverPostgres || c.Report.Sink == SinkPostgres
}
