package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// FileEnv names the environment variable holding an optional config file.
const FileEnv = "NUMERICS_CONFIG"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server" toml:"server"`
	Numeric   NumericConfig   `json:"numeric" yaml:"numeric" toml:"numeric"`
	Logging   LogConfig       `json:"logging" yaml:"logging" toml:"logging"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" json:"port" yaml:"port" toml:"port"`
	Host string `envconfig:"HOST" json:"host" yaml:"host" toml:"host"`
}

// NumericConfig holds the default kind and decimal policy.
type NumericConfig struct {
	Kind      string `envconfig:"NUMERIC_KIND" json:"kind" yaml:"kind" toml:"kind"`
	Precision uint32 `envconfig:"NUMERIC_PRECISION" json:"precision" yaml:"precision" toml:"precision"`
	Rounding  string `envconfig:"NUMERIC_ROUNDING" json:"rounding" yaml:"rounding" toml:"rounding"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" json:"level" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" json:"development" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" json:"burst" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" json:"enabled" yaml:"enabled" toml:"enabled"`
}

// Load builds configuration from defaults, then the file named by
// NUMERICS_CONFIG, then environment variables.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	// Fields carry no default tags, so unset variables leave earlier layers intact.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	policy := numeric.DefaultPolicy()
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Numeric: NumericConfig{
			Kind:      numeric.KindDecimal.String(),
			Precision: policy.Precision,
			Rounding:  policy.Rounding.String(),
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".json":
		err = sonic.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the numeric section and rate limits.
func (c *Config) Validate() error {
	if _, err := c.Kind(); err != nil {
		return fmt.Errorf("invalid numeric kind: %w", err)
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("invalid numeric policy: %w", err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive rps and burst")
	}
	return nil
}

// Kind returns the configured default numeric kind.
func (c *Config) Kind() (numeric.Kind, error) {
	return numeric.ParseKind(c.Numeric.Kind)
}

// Policy returns the configured decimal policy.
func (c *Config) Policy() (numeric.Policy, error) {
	mode, err := numeric.ParseRoundingMode(c.Numeric.Rounding)
	if err != nil {
		return numeric.Policy{}, err
	}
	p := numeric.Policy{Precision: c.Numeric.Precision, Rounding: mode}
	return p, p.Validate()
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
