package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	API       APIConfig
	RateLimit RateLimitConfig
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Env      string `env:"APP_ENV" envDefault:"production"`
	Debug    bool   `env:"APP_DEBUG" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"crm"`
	Password        string        `env:"DB_PASSWORD" envDefault:"crm"`
	DBName          string        `env:"DB_NAME" envDefault:"crm"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// RedisConfig holds the optional Redis connection used for shared rate-limit counters.
// An empty URL selects the in-process store.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port           int      `env:"API_PORT" envDefault:"8080"`
	Prefix         string   `env:"API_PREFIX" envDefault:"/api"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	// TrustedProxies are addresses or CIDR ranges allowed to set X-Forwarded-For.
	// Empty means clients are keyed by socket address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// RateLimitConfig holds the three limiter tiers
type RateLimitConfig struct {
	General        int           `env:"RATE_LIMIT_GENERAL" envDefault:"100"`
	GeneralWindow  time.Duration `env:"RATE_LIMIT_GENERAL_WINDOW" envDefault:"15m"`
	Mutating       int           `env:"RATE_LIMIT_MUTATING" envDefault:"20"`
	MutatingWindow time.Duration `env:"RATE_LIMIT_MUTATING_WINDOW" envDefault:"15m"`
	Export         int           `env:"RATE_LIMIT_EXPORT" envDefault:"10"`
	ExportWindow   time.Duration `env:"RATE_LIMIT_EXPORT_WINDOW" envDefault:"60m"`
	// SkipLocalhost is resolved in Load when unset: true only in development.
	SkipLocalhost *bool `env:"RATE_LIMIT_SKIP_LOCALHOST"`
}

// Load reads configuration from the environment, after loading an optional .env file
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.RateLimit.SkipLocalhost == nil {
		skip := cfg.App.IsDevelopment()
		cfg.RateLimit.SkipLocalhost = &skip
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid API_PORT: %d", c.API.Port)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid DB_PORT: %d", c.Database.Port)
	}
	if c.RateLimit.General < 1 || c.RateLimit.Mutating < 1 || c.RateLimit.Export < 1 {
		return fmt.Errorf("rate limits must be positive")
	}
	if c.RateLimit.GeneralWindow <= 0 || c.RateLimit.MutatingWindow <= 0 || c.RateLimit.ExportWindow <= 0 {
		return fmt.Errorf("rate limit windows must be positive")
	}
	if !strings.HasPrefix(c.API.Prefix, "/") {
		return fmt.Errorf("invalid API_PREFIX %q: must start with /", c.API.Prefix)
	}
	return nil
}

// IsDevelopment reports whether the process runs in development mode
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

// ExposeErrors reports whether internal error messages may reach clients
func (a AppConfig) ExposeErrors() bool {
	return a.Debug || a.IsDevelopment()
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (a AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
