package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
)

// FileConfig defines the structure loaded from the optional YAML
// configuration file.
type FileConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// Config holds the final application configuration, merged from the optional
// file and environment variables. Environment variables use the prefix
// "CHEMBL_" and override file settings.
type Config struct {
	// Config file path, loaded first from the environment.
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// Upstream API settings.
	BaseURL   string `envconfig:"BASE_URL"`
	UserAgent string `envconfig:"USER_AGENT"`

	// Transport and server settings (SSE mode).
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	AdminAddr  string `envconfig:"ADMIN_ADDR" default:":8081"`

	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level for the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from the environment, then from the YAML file if
// one is configured, and finally applies environment overrides on top of the
// file values.
func Load() (*Config, error) {
	var initialCfg Config
	if err := envconfig.Process("chembl", &initialCfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	fileCfg := FileConfig{}
	if initialCfg.ConfigFilePath != "" {
		data, err := os.ReadFile(initialCfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		slog.Info("Loaded configuration from file.", "path", initialCfg.ConfigFilePath)
	}

	finalCfg := initialCfg
	if finalCfg.BaseURL == "" {
		finalCfg.BaseURL = fileCfg.BaseURL
	}
	if finalCfg.UserAgent == "" {
		finalCfg.UserAgent = fileCfg.UserAgent
	}

	// Process environment variables again so they win over file settings.
	if err := envconfig.Process("chembl", &finalCfg); err != nil {
		return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
	}

	if finalCfg.BaseURL == "" {
		finalCfg.BaseURL = chembl.DefaultBaseURL
	}
	return &finalCfg, nil
}
