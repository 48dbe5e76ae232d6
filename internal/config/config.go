// Package config loads application configuration from a YAML file selected by
// APP_ENV, with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the API server
type Config struct {
	App struct {
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		// DSN is the MySQL connection string
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		// ExpiresIn / RefreshIn are in seconds
		ExpiresIn int `yaml:"expires_in"`
		RefreshIn int `yaml:"refresh_in"`
	} `yaml:"jwt"`

	CORS struct {
		// AllowOrigins is a comma-separated list of allowed origins
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// Path returns the config file path for the current APP_ENV
func Path() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

// Load reads the YAML file at path (if present) and applies env overrides.
// A missing file is not an error; defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret not set (JWT_SECRET or jwt.secret)")
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev" || c.App.Env == "local"
}

// AllowedOrigins returns the configured CORS origins as a trimmed slice
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, part := range strings.Split(c.CORS.AllowOrigins, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func defaults() *Config {
	cfg := &Config{}
	cfg.App.Env = "local"
	cfg.Server.Port = 8080
	cfg.JWT.ExpiresIn = 900
	cfg.JWT.RefreshIn = 7 * 24 * 3600
	cfg.CORS.AllowOrigins = "http://localhost:3000"
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.App.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.JWT.ExpiresIn = n
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORS.AllowOrigins = v
	}
}
