// Package config loads SDK configuration from YAML files and the
// environment using Viper.
//
// The config file is resolved from an explicit path, the MINIAPP_CONFIG
// environment variable, or miniapp.yml in the working directory; a
// missing file falls back to defaults plus environment overrides with
// the MINIAPP_ prefix (e.g. MINIAPP_BRIDGE_URL, MINIAPP_LOGGING_LEVEL).
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/MoveIndustries/mini-app-sdk/logging"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

const (
	// DefaultBridgeURL is the host bridge endpoint used when none is
	// configured; it matches the local development harness.
	DefaultBridgeURL = "ws://localhost:8765/bridge"

	// DefaultReadyTimeout bounds the readiness wait during startup.
	DefaultReadyTimeout = 5 * time.Second

	// EnvPrefix namespaces the environment variables read by Load.
	EnvPrefix = "MINIAPP"

	configName = "miniapp"
)

// Config is the full SDK configuration.
type Config struct {
	Bridge   BridgeConfig    `yaml:"bridge" mapstructure:"bridge"`
	Security security.Config `yaml:"security" mapstructure:"security"`
	Logging  LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// BridgeConfig locates the host bridge.
type BridgeConfig struct {
	URL          string        `yaml:"url" mapstructure:"url"`
	ReadyTimeout time.Duration `yaml:"ready_timeout" mapstructure:"ready_timeout"`
}

// LoggingConfig is the file form of the logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LoggerConfig converts the file form into logger settings.
func (l LoggingConfig) LoggerConfig() *logging.LoggerConfig {
	return &logging.LoggerConfig{
		Level:  logging.ParseLevel(l.Level),
		Format: l.Format,
	}
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Bridge: BridgeConfig{
			URL:          DefaultBridgeURL,
			ReadyTimeout: DefaultReadyTimeout,
		},
		Security: security.DefaultConfig(),
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// setDefaults seeds viper with every field's default. Boolean fields get
// their unset-vs-false distinction here: a file or env var can turn them
// off, absence means on.
func setDefaults() {
	viper.SetDefault("bridge.url", DefaultBridgeURL)
	viper.SetDefault("bridge.ready_timeout", DefaultReadyTimeout.String())

	viper.SetDefault("security.max_transaction_amount", security.DefaultMaxTransactionAmount)
	viper.SetDefault("security.rate_limit_window", security.DefaultRateLimitWindow.String())
	viper.SetDefault("security.max_requests_per_window", security.DefaultMaxRequestsPerWindow)
	viper.SetDefault("security.enable_csp", true)
	viper.SetDefault("security.strict_mode", true)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// Load resolves, reads, and validates the configuration. path is the
// explicit config file ("" to fall back to MINIAPP_CONFIG and then
// miniapp.yml); an explicit or env-given file must exist, the default
// search may come up empty.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else if envPath := os.Getenv(EnvPrefix + "_CONFIG"); envPath != "" {
		viper.SetConfigFile(envPath)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return unmarshal()
}

func unmarshal() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Security = cfg.Security.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the bridge endpoint and delegates the security policy
// check.
func (c *Config) Validate() error {
	if c.Bridge.URL == "" {
		return fmt.Errorf("bridge config: url is required")
	}
	u, err := url.Parse(c.Bridge.URL)
	if err != nil {
		return fmt.Errorf("bridge config: invalid url %q: %w", c.Bridge.URL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("bridge config: url scheme must be ws or wss, got %q", u.Scheme)
	}
	if c.Bridge.ReadyTimeout <= 0 {
		return fmt.Errorf("bridge config: ready_timeout must be positive")
	}

	if err := c.Security.Validate(); err != nil {
		return fmt.Errorf("security config: %w", err)
	}
	return nil
}

// Watch re-loads the configuration whenever the underlying file changes
// and hands the re-validated result to fn. Updates that fail to parse or
// validate are logged and dropped; the previous configuration stays in
// effect. Load must have succeeded with a config file present.
func Watch(logger logging.Logger, fn func(*Config)) {
	viper.OnConfigChange(func(event fsnotify.Event) {
		cfg, err := unmarshal()
		if err != nil {
			if logger != nil {
				logger.Warn(context.Background(), err, "ignoring config change", "file", event.Name)
			}
			return
		}
		if logger != nil {
			logger.Info(context.Background(), "configuration reloaded", "file", event.Name)
		}
		fn(cfg)
	})
	viper.WatchConfig()
}

// WriteDefault writes the default configuration to path as YAML.
// Durations are written in their string form so the file round-trips
// through Load.
func WriteDefault(path string) error {
	doc := map[string]interface{}{
		"bridge": map[string]interface{}{
			"url":           DefaultBridgeURL,
			"ready_timeout": DefaultReadyTimeout.String(),
		},
		"security": map[string]interface{}{
			"max_transaction_amount":  security.DefaultMaxTransactionAmount,
			"allowed_origins":         []string{},
			"rate_limit_window":       security.DefaultRateLimitWindow.String(),
			"max_requests_per_window": security.DefaultMaxRequestsPerWindow,
			"enable_csp":              true,
			"strict_mode":             true,
		},
		"logging": map[string]interface{}{
			"level":  "info",
			"format": "text",
		},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
