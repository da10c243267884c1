package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(envAPIKey, "")
	t.Setenv(envDatabaseDriver, "")
	path := writeConfig(t, "auth:\n  api_key: yaml-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "flight.db", cfg.Database.SQLitePath)
	assert.Equal(t, "yaml-secret", cfg.Auth.APIKey)
	assert.Equal(t, 60, cfg.Cache.FlightsTTLSeconds)
	assert.Equal(t, 24, cfg.Worker.DigestWindowHours)
}

func TestLoadConfig_EnvOverridesSecret(t *testing.T) {
	t.Setenv(envAPIKey, "env-secret")
	t.Setenv(envDatabaseDriver, DriverPostgres)
	path := writeConfig(t, `
auth:
  api_key: yaml-secret
database:
  host: db
  port: 5432
  user: flights
  password: pw
  name: flightdesk
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.APIKey)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=db port=5432 user=flights password=pw dbname=flightdesk sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv(envDatabaseDriver, "")
	path := writeConfig(t, "database:\n  driver: oracle\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidSeed(t *testing.T) {
	t.Setenv(envDatabaseDriver, "")
	path := writeConfig(t, "database:\n  seed_aircraft:\n    - serial: EC-AIN\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogConfig{Level: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{}.SlogLevel())
}
