package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Session backends.
const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

// Config contains client configuration parameters.
type Config struct {
	LogLevel    int       `env:"LOG_LEVEL" envDefault:"0"`
	Environment string    `env:"ENVIRONMENT" envDefault:"development"`
	API         API       `envPrefix:"API_"`
	Session     Session   `envPrefix:"SESSION_"`
	Dashboard   Dashboard `envPrefix:"DASHBOARD_"`
	Metrics     Metrics   `envPrefix:"METRICS_"`
	Tracing     Tracing   `envPrefix:"OTEL_"`
}

// API contains backend connection parameters.
type API struct {
	URL     string        `env:"URL" envDefault:"http://localhost:3000"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Session contains parameters of the persisted login session.
type Session struct {
	Backend  string `env:"BACKEND" envDefault:"file"`
	File     string `env:"FILE"`
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisKey string `env:"REDIS_KEY" envDefault:"creatorhub:session"`
}

// Dashboard contains defaults for list and dashboard commands.
type Dashboard struct {
	PageSize int           `env:"PAGE_SIZE" envDefault:"10"`
	Refresh  time.Duration `env:"REFRESH" envDefault:"30s"`
}

// Metrics contains parameters of the /metrics listener used in watch mode.
// TLS is enabled when both certificate and key files are set.
type Metrics struct {
	Addr     string `env:"ADDR"`
	CertFile string `env:"TLS_CERT_FILE"`
	KeyFile  string `env:"TLS_KEY_FILE"`
}

// TLS reports whether the metrics listener serves HTTPS.
func (m Metrics) TLS() bool {
	return m.CertFile != "" && m.KeyFile != ""
}

// Tracing contains OpenTelemetry exporter parameters.
type Tracing struct {
	Endpoint    string `env:"EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"creatorhub"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Session.File == "" {
		cfg.Session.File = defaultSessionFile()
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none given)
// without overriding the process environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Dashboard.Refresh <= 0 {
		return fmt.Errorf("dashboard refresh must be positive, got %s", c.Dashboard.Refresh)
	}
	if (c.Metrics.CertFile == "") != (c.Metrics.KeyFile == "") {
		return errors.New("metrics tls needs both certificate and key files")
	}
	if c.Dashboard.PageSize < 1 {
		return fmt.Errorf("dashboard page size must be positive, got %d", c.Dashboard.PageSize)
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".creatorhub", "session.json")
	}
	return filepath.Join(home, ".creatorhub", "session.json")
}
