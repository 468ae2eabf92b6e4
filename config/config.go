// Package config provides application configuration management.
// It loads defaults, an optional TOML file named by CONFIG_FILE, and then
// environment variables, each layer overriding the previous one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host          string   `toml:"host"`
	Port          int      `toml:"port"`
	ReadTimeout   Duration `toml:"read_timeout"`
	WriteTimeout  Duration `toml:"write_timeout"`
	ReportTimeout Duration `toml:"report_timeout"`
	Environment   string   `toml:"environment"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver          string   `toml:"driver"` // sqlite or postgres
	URL             string   `toml:"url"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration. When disabled, rate limiting stays in memory.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AuthConfig holds bearer token configuration. An empty secret disables authentication.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// RateLimitConfig holds API rate limit configuration.
type RateLimitConfig struct {
	MaxRequests int      `toml:"max_requests"`
	Window      Duration `toml:"window"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Duration is a time.Duration written as a Go duration string in TOML ("15s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			ReadTimeout:   Duration{15 * time.Second},
			WriteTimeout:  Duration{15 * time.Second},
			ReportTimeout: Duration{10 * time.Second},
			Environment:   "development",
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			URL:             "finance.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration{5 * time.Minute},
		},
		Redis: RedisConfig{
			Enabled: false,
			URL:     "redis://localhost:6379/0",
		},
		RateLimit: RateLimitConfig{
			MaxRequests: 120,
			Window:      Duration{time.Minute},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the CONFIG_FILE TOML file if set,
// and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.RateLimit.MaxRequests < 1 {
		return fmt.Errorf("rate limit max requests must be positive, got %d", c.RateLimit.MaxRequests)
	}
	if c.RateLimit.Window.Duration <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	if c.Server.ReportTimeout.Duration <= 0 {
		return fmt.Errorf("report timeout must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout.Duration = getEnvAsDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout.Duration)
	cfg.Server.WriteTimeout.Duration = getEnvAsDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout.Duration)
	cfg.Server.ReportTimeout.Duration = getEnvAsDuration("REPORT_TIMEOUT", cfg.Server.ReportTimeout.Duration)
	cfg.Server.Environment = getEnv("ENV", cfg.Server.Environment)

	cfg.Database.Driver = strings.ToLower(getEnv("DATABASE_DRIVER", cfg.Database.Driver))
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetime.Duration = getEnvAsDuration("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime.Duration)

	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", cfg.Redis.Enabled)
	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)

	cfg.RateLimit.MaxRequests = getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", cfg.RateLimit.MaxRequests)
	cfg.RateLimit.Window.Duration = getEnvAsDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window.Duration)

	cfg.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", cfg.Log.Level))
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
