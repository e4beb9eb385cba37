// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	feedURL := cfg.Calendar.FeedURL
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Auth          AuthConfig          `yaml:"auth"`
	Storage       StorageConfig       `yaml:"storage"`
	Calendar      CalendarConfig      `yaml:"calendar"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AuthConfig holds session login credentials
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// CalendarConfig holds calendar feed sync settings.
// An empty FeedURL disables the reconciliation pipeline entirely.
type CalendarConfig struct {
	FeedURL             string `yaml:"feed_url"`
	SyncIntervalMinutes int    `yaml:"sync_interval_minutes"`
	StartupDelaySeconds int    `yaml:"startup_delay_seconds"`
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${HMS_PASS})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("HMS_PORT", 3004),
		},
		Auth: AuthConfig{
			Username: os.Getenv("HMS_USER"),
			Password: os.Getenv("HMS_PASS"),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("HMS_DB_PATH", "mileage.db"),
		},
		Calendar: CalendarConfig{
			FeedURL:             os.Getenv("HMS_CALENDAR_URL"),
			SyncIntervalMinutes: getEnvInt("HMS_SYNC_INTERVAL_MINUTES", 30),
			StartupDelaySeconds: getEnvInt("HMS_SYNC_STARTUP_DELAY_SECONDS", 10),
			TimeoutSeconds:      getEnvInt("HMS_CALENDAR_TIMEOUT_SECONDS", 30),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}

	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills in zero values so a sparse YAML file still works.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3004
	}
	if c.Auth.Username == "" {
		c.Auth.Username = getEnv("HMS_USER", "highland")
	}
	if c.Auth.Password == "" {
		c.Auth.Password = getEnv("HMS_PASS", "changeme")
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "mileage.db"
	}
	if c.Calendar.SyncIntervalMinutes == 0 {
		c.Calendar.SyncIntervalMinutes = 30
	}
	if c.Calendar.StartupDelaySeconds == 0 {
		c.Calendar.StartupDelaySeconds = 10
	}
	if c.Calendar.TimeoutSeconds == 0 {
		c.Calendar.TimeoutSeconds = 30
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
