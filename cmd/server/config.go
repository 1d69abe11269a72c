// Package main provides the Showfloor server CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/driftwoodlabs/showfloor/internal/storage"
)

// Config represents the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Verbose  bool           `yaml:"-"` // set via CLI flag
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address        string   `yaml:"address"`          // HTTP listen address (default: :3000)
	AllowedOrigins []string `yaml:"allowed_origins"`  // CORS origins for the JSON API
	RateLimitPerIP int      `yaml:"rate_limit_per_ip"` // write requests per IP per minute
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	AdminDB  string `yaml:"admin_db"` // maintenance database used to create Name
	SSLMode  string `yaml:"sslmode"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"` // metrics listen address (default: :9091)
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":3000"
	}
	if c.Server.RateLimitPerIP == 0 {
		c.Server.RateLimitPerIP = 60
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.User == "" {
		c.Database.User = "postgres"
	}
	if c.Database.Name == "" {
		c.Database.Name = "showfloor"
	}
	if c.Database.AdminDB == "" {
		c.Database.AdminDB = "postgres"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9091"
	}
}

// applyEnvOverrides lets environment variables override file settings.
// PORT follows the hosting convention of a bare port number.
func (c *Config) applyEnvOverrides() error {
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		c.Server.Address = ":" + port
	}
	if host := os.Getenv("SHOWFLOOR_DB_HOST"); host != "" {
		c.Database.Host = host
	}
	if port := os.Getenv("SHOWFLOOR_DB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SHOWFLOOR_DB_PORT %q: %w", port, err)
		}
		c.Database.Port = p
	}
	if user := os.Getenv("SHOWFLOOR_DB_USER"); user != "" {
		c.Database.User = user
	}
	if password := os.Getenv("SHOWFLOOR_DB_PASSWORD"); password != "" {
		c.Database.Password = password
	}
	if name := os.Getenv("SHOWFLOOR_DB_NAME"); name != "" {
		c.Database.Name = name
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be between 1 and 65535")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	return nil
}

// storageConfig maps the YAML settings onto the storage layer config.
func (c *Config) storageConfig() storage.Config {
	cfg := storage.Config{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Database: c.Database.Name,
		AdminDB:  c.Database.AdminDB,
		SSLMode:  c.Database.SSLMode,
	}
	cfg.SetDefaults()
	return cfg
}
