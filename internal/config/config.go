// Package config loads the server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds the SQLite settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds the logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Host: "localhost", Port: 8080},
		Database: DatabaseConfig{Path: "laneboard.db"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the config file at path, if it exists, and applies environment
// overrides on top. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv overlays LANEBOARD_* environment variables onto the config.
func (c *Config) applyEnv() error {
	if v := os.Getenv("LANEBOARD_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("LANEBOARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LANEBOARD_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LANEBOARD_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("LANEBOARD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LANEBOARD_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	return nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "laneboard.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
