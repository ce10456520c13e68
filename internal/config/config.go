// Package config loads service configuration in layers: built-in defaults,
// then an optional YAML file, then environment variables (highest
// precedence). A .env file in the working directory is honored for local
// development.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the complete shipbell configuration.
type Config struct {
	// Listen is a full listen address (host:port). When set it takes
	// precedence over Port.
	Listen string `yaml:"listen" env:"LISTEN"`

	// Port is the server port used when Listen is empty.
	Port int `yaml:"port" env:"PORT"`

	// WebhookSecret enables signature enforcement on /webhook when set.
	// Empty means verification is disabled (see internal/webhook policy).
	WebhookSecret string `yaml:"webhook_secret" env:"WEBHOOK_SECRET"`

	// SignatureHeader is the HTTP header carrying the hex HMAC signature.
	// Examples: "X-Webhook-Signature", "X-Hub-Signature-256" (GitHub).
	SignatureHeader string `yaml:"signature_header" env:"SIGNATURE_HEADER"`

	// HistoryCapacity bounds the in-memory notification store.
	HistoryCapacity int `yaml:"history_capacity" env:"HISTORY_CAPACITY"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:            3000,
		SignatureHeader: "X-Webhook-Signature",
		HistoryCapacity: 100,
		LogLevel:        "INFO",
		LogFormat:       "json",
	}
}

// Load builds the configuration. configPath may be empty (no file layer).
func Load(configPath string) (Config, error) {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := Defaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("config file not found: %s", configPath)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Listen == "" && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("port %d out of range and no listen address set", c.Port)
	}
	if c.SignatureHeader == "" {
		return fmt.Errorf("signature_header must not be empty")
	}
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("history_capacity must be positive, got %d", c.HistoryCapacity)
	}
	return nil
}

// Addr returns the listen address the server binds to.
func (c Config) Addr() string {
	if c.Listen != "" {
		return c.Listen
	}
	return fmt.Sprintf(":%d", c.Port)
}
