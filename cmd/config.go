package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	DispatcherSimulated = "simulated"
	DispatcherGateway   = "gateway"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBUser        string `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName        string `envconfig:"DB_NAME" default:"refill"`
	DBSslMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	DBAutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`

	PrintDispatcher    string `envconfig:"PRINT_DISPATCHER" default:"simulated"`
	PrintGatewayBuffer int    `envconfig:"PRINT_GATEWAY_BUFFER" default:"16"`

	StalePrintJobAfter    time.Duration `envconfig:"STALE_PRINT_JOB_AFTER" default:"10m"`
	StalePrintJobSchedule string        `envconfig:"STALE_PRINT_JOB_SCHEDULE" default:"0 */5 * * * *"`
	PickupReportSchedule  string        `envconfig:"PICKUP_REPORT_SCHEDULE" default:"0 0 * * * *"`

	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads an optional .env file into the environment and then
// processes the environment. Variables already set win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q",
			StoragePostgres, StorageMemory, c.StorageDriver))
	}
	switch c.PrintDispatcher {
	case DispatcherSimulated, DispatcherGateway:
	default:
		errs = append(errs, fmt.Errorf("PRINT_DISPATCHER must be %q or %q, got %q",
			DispatcherSimulated, DispatcherGateway, c.PrintDispatcher))
	}
	if c.PrintGatewayBuffer <= 0 {
		errs = append(errs, fmt.Errorf("PRINT_GATEWAY_BUFFER must be positive, got %d", c.PrintGatewayBuffer))
	}
	if c.StalePrintJobAfter <= 0 {
		errs = append(errs, fmt.Errorf("STALE_PRINT_JOB_AFTER must be positive, got %s", c.StalePrintJobAfter))
	}
	return errors.Join(errs...)
}

// DatabaseURL builds a postgres:// URL understood by both the gorm driver and
// the migrations.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c Config) ListenAddr() string {
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}
