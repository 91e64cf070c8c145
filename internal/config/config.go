// Package config loads server settings from an optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the full server configuration
type Config struct {
	Env      string         `yaml:"env" env:"APP_ENV"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Compare  CompareConfig  `yaml:"compare"`
	SeedDemo bool           `yaml:"seed_demo" env:"SEED_DEMO"`
}

// ServerConfig holds listener and lifecycle settings
type ServerConfig struct {
	HTTPAddr        string        `yaml:"http_addr" env:"HTTP_ADDR"`
	GRPCAddr        string        `yaml:"grpc_addr" env:"GRPC_ADDR"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	HealthInterval  time.Duration `yaml:"health_interval" env:"HEALTH_INTERVAL"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects and addresses the store
// ConnStr wins over the individual postgres fields when set
type DatabaseConfig struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER"`
	ConnStr    string `yaml:"conn_str" env:"DB_CONN_STR"`
	Host       string `yaml:"host" env:"DB_HOST"`
	Port       string `yaml:"port" env:"DB_PORT"`
	User       string `yaml:"user" env:"DB_USER"`
	Password   string `yaml:"password" env:"DB_PASSWORD"`
	Name       string `yaml:"name" env:"DB_NAME"`
	SSLMode    string `yaml:"ssl_mode" env:"DB_SSLMODE"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// CompareConfig bounds the comparison fan-out; 0 means one goroutine per id
type CompareConfig struct {
	MaxConcurrency int `yaml:"max_concurrency" env:"COMPARE_MAX_CONCURRENCY"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Env: "production",
		Server: ServerConfig{
			HTTPAddr:        ":3000",
			GRPCAddr:        ":9090",
			CORSOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
			HealthInterval:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:     DriverPostgres,
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Password:   "postgres",
			Name:       "wealthsim",
			SSLMode:    "disable",
			SQLitePath: "wealthsim.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if any),
// then environment variable overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required when driver is sqlite")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (valid: postgres, sqlite)", c.Database.Driver)
	}

	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("http_addr is required")
	}

	if c.Compare.MaxConcurrency < 0 {
		return fmt.Errorf("compare max_concurrency must be non-negative, got %d", c.Compare.MaxConcurrency)
	}

	if c.Server.HealthInterval < 0 {
		return fmt.Errorf("health_interval must be non-negative, got %v", c.Server.HealthInterval)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}

	return nil
}

// IsDevelopment reports whether internal error details may be exposed to clients
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// PostgresDSN returns DB_CONN_STR when set, otherwise builds one from the individual fields
func (d DatabaseConfig) PostgresDSN() string {
	if d.ConnStr != "" {
		return d.ConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
