// Package config provides unified configuration loading for the OCR service.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glyphlab/ocrserve/internal/language"
)

// Config holds all configuration for the OCR service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Engine        EngineConfig        `yaml:"engine"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	MaxUploadBytes   int64         `yaml:"max_upload_bytes"`
	CORSOrigins      []string      `yaml:"cors_origins"`
}

// EngineConfig holds engine lifecycle and concurrency settings.
type EngineConfig struct {
	Policy          string            `yaml:"policy"` // cached or ephemeral
	Concurrency     int               `yaml:"concurrency"`
	DefaultLanguage string            `yaml:"default_language"`
	Aliases         map[string]string `yaml:"aliases"`
	TessdataPrefix  string            `yaml:"tessdata_prefix"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     120 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
			MaxUploadBytes:   10 << 20,
			CORSOrigins:      []string{"*"},
		},
		Engine: EngineConfig{
			Policy:          "cached",
			Concurrency:     1,
			DefaultLanguage: language.DefaultLanguage,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "ocrserve",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}

	if c.Engine.Policy != "cached" && c.Engine.Policy != "ephemeral" {
		return fmt.Errorf("invalid engine policy: %s", c.Engine.Policy)
	}

	if c.Engine.Concurrency < 1 {
		return fmt.Errorf("engine concurrency must be at least 1, got %d", c.Engine.Concurrency)
	}

	if !language.NewResolver().IsSupported(c.Engine.DefaultLanguage) {
		return fmt.Errorf("default language %q is not a canonical language code", c.Engine.DefaultLanguage)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("ENGINE_POLICY"); v != "" {
		cfg.Engine.Policy = v
	}

	if v := os.Getenv("ENGINE_CONCURRENCY"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Engine.Concurrency = n
		}
	}

	if v := os.Getenv("DEFAULT_LANGUAGE"); v != "" {
		cfg.Engine.DefaultLanguage = v
	}

	if v := os.Getenv("TESSDATA_PREFIX"); v != "" {
		cfg.Engine.TessdataPrefix = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
