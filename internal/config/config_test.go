package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "/api", cfg.API.Prefix)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.API.AllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimit.General)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.GeneralWindow)
	assert.Equal(t, 20, cfg.RateLimit.Mutating)
	assert.Equal(t, 10, cfg.RateLimit.Export)
	assert.Equal(t, time.Hour, cfg.RateLimit.ExportWindow)
	require.NotNil(t, cfg.RateLimit.SkipLocalhost)
	assert.False(t, *cfg.RateLimit.SkipLocalhost)
	assert.False(t, cfg.App.ExposeErrors())
	assert.Empty(t, cfg.API.TrustedProxies)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,172.16.0.0/12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.API.TrustedProxies)
}

func TestLoad_Development(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, *cfg.RateLimit.SkipLocalhost)
	assert.True(t, cfg.App.ExposeErrors())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.API.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "API_PORT", "abc"},
		{"port out of range", "API_PORT", "70000"},
		{"zero limit", "RATE_LIMIT_EXPORT", "0"},
		{"bad prefix", "API_PREFIX", "api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAppConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, AppConfig{LogLevel: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, AppConfig{LogLevel: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, AppConfig{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, AppConfig{LogLevel: "whatever"}.SlogLevel())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "crm", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=crm sslmode=require", d.DSN())
}
