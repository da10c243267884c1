package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	envAPIKey         = "FLIGHTDESK_API_KEY"
	envDatabaseDriver = "FLIGHTDESK_DATABASE_DRIVER"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Cache    CacheConfig    `yaml:"cache"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address        string `yaml:"address"`
	SwaggerEnabled bool   `yaml:"swagger_enabled"`
}

type GRPCConfig struct {
	// Empty address disables the gRPC listener.
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Driver       string         `yaml:"driver"`
	SQLitePath   string         `yaml:"sqlite_path"`
	Host         string         `yaml:"host"`
	Port         int            `yaml:"port"`
	User         string         `yaml:"user"`
	Password     string         `yaml:"password"`
	Name         string         `yaml:"name"`
	SSLMode      string         `yaml:"ssl_mode"`
	SeedAircraft []AircraftSeed `yaml:"seed_aircraft"`
}

type AircraftSeed struct {
	Serial       string `yaml:"serial"`
	Manufacturer string `yaml:"manufacturer"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	// Empty address disables caching.
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	FlightEventsTopic string   `yaml:"flight_events_topic"`
	GroupID           string   `yaml:"group_id"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type ScheduleConfig struct {
	ChronologicalDates bool `yaml:"chronological_dates"`
}

type CacheConfig struct {
	FlightsTTLSeconds int `yaml:"flights_ttl_seconds"`
}

type WorkerConfig struct {
	DigestIntervalMinutes int `yaml:"digest_interval_minutes"`
	DigestWindowHours     int `yaml:"digest_window_hours"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlogLevel maps the configured level name, falling back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
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

func LoadConfig(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envAPIKey); v != "" {
		c.Auth.APIKey = v
	}
	if v := os.Getenv(envDatabaseDriver); v != "" {
		c.Database.Driver = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "flight.db"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "flightdesk-worker"
	}
	if c.Cache.FlightsTTLSeconds <= 0 {
		c.Cache.FlightsTTLSeconds = 60
	}
	if c.Worker.DigestIntervalMinutes <= 0 {
		c.Worker.DigestIntervalMinutes = 60
	}
	if c.Worker.DigestWindowHours <= 0 {
		c.Worker.DigestWindowHours = 24
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	for i, s := range c.Database.SeedAircraft {
		if s.Serial == "" || s.Manufacturer == "" {
			return fmt.Errorf("seed_aircraft[%d]: serial and manufacturer are required", i)
		}
	}
	return nil
}
