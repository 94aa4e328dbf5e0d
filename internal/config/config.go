package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string `envconfig:"ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Database
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"papertrade"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"papertrade"`
	DBName     string `envconfig:"DB_NAME" default:"papertrade"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// JWT
	JWTSecret     string        `envconfig:"JWT_SECRET" default:"fallback-secret-key-for-dev-only"`
	JWTAccessTTL  time.Duration `envconfig:"JWT_ACCESS_TTL" default:"15m"`
	JWTRefreshTTL time.Duration `envconfig:"JWT_REFRESH_TTL" default:"168h"`

	// Trading
	StartingCashRaw string          `envconfig:"STARTING_CASH" default:"10000.00"`
	StartingCash    decimal.Decimal `ignored:"true"`

	// Quotes
	QuoteBaseURL  string        `envconfig:"QUOTE_BASE_URL" default:"https://query2.finance.yahoo.com/v8/finance/chart"`
	QuoteTimeout  time.Duration `envconfig:"QUOTE_TIMEOUT" default:"8s"`
	RedisURL      string        `envconfig:"REDIS_URL"`
	QuoteCacheTTL time.Duration `envconfig:"QUOTE_CACHE_TTL" default:"60s"`

	// Metrics
	MetricsAPIKey string `envconfig:"METRICS_API_KEY"`
}

// Load loads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	cash, err := decimal.NewFromString(cfg.StartingCashRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_CASH %q: %w", cfg.StartingCashRaw, err)
	}
	if cash.IsNegative() {
		return nil, fmt.Errorf("STARTING_CASH must not be negative, got %s", cash)
	}
	cfg.StartingCash = cash

	if cfg.JWTAccessTTL <= 0 || cfg.JWTRefreshTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive")
	}
	if cfg.QuoteTimeout <= 0 {
		return nil, fmt.Errorf("QUOTE_TIMEOUT must be positive, got %v", cfg.QuoteTimeout)
	}

	return &cfg, nil
}

// DatabaseURL returns the postgres URL used by the migration tooling.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
