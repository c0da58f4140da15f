// bridgectl is an operator CLI for exercising a host wallet bridge
// through the mini app SDK's security mediator.
//
// Configuration sources, highest priority first: command-line flags,
// MINIAPP_* environment variables, a YAML config file (--config flag,
// MINIAPP_CONFIG env var, or miniapp.yml in the working directory), and
// built-in defaults.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	miniapp "github.com/MoveIndustries/mini-app-sdk"
	"github.com/MoveIndustries/mini-app-sdk/bridge/wsbridge"
	"github.com/MoveIndustries/mini-app-sdk/config"
	"github.com/MoveIndustries/mini-app-sdk/logging"
)

var (
	cfgFile   string
	bridgeURL string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Exercise a host wallet bridge through the mini app SDK",
	Long: `bridgectl talks to a host wallet bridge endpoint through the mini app
SDK's security mediator: every transaction and signing request passes
the same rate limits, validation, and replay protection the SDK applies
inside a mini app.

Quick start:
  bridgectl init-config           Write a default miniapp.yml
  bridgectl doctor                Check the bridge connection and capabilities
  bridgectl send payload.json     Send a transaction through the mediator
  bridgectl sign --message hello  Sign a message with replay protection
  bridgectl view 0x1::coin::name  Evaluate a read-only function`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is miniapp.yml, can also use MINIAPP_CONFIG env var)")
	rootCmd.PersistentFlags().StringVar(&bridgeURL, "bridge-url", "", "host bridge WebSocket URL (overrides config)")
	rootCmd.PersistentFlags().Var(newEnumValue(&logLevel, "debug", "info", "warn", "warning", "error"), "log-level", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Var(newEnumValue(&logFormat, "text", "json"), "log-format", "log format (text, json)")
}

// loadConfig reads the configuration and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if bridgeURL != "" {
		cfg.Bridge.URL = bridgeURL
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(cfg.Logging.LoggerConfig()).WithComponent("bridgectl")
}

func dialBridge(ctx context.Context, cfg *config.Config, logger logging.Logger) (*wsbridge.Bridge, error) {
	return wsbridge.Dial(ctx, cfg.Bridge.URL, wsbridge.WithLogger(logger))
}

// connect dials the configured bridge, waits for it to become ready, and
// wraps it in the security mediator. The caller owns the returned bridge
// and must Close it.
func connect(ctx context.Context, cfg *config.Config, logger logging.Logger) (*miniapp.Client, *wsbridge.Bridge, error) {
	b, err := dialBridge(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := miniapp.WaitForReady(ctx, b, cfg.Bridge.ReadyTimeout); err != nil {
		_ = b.Close()
		return nil, nil, err
	}

	client, err := miniapp.New(b, cfg.Security, miniapp.WithLogger(logger))
	if err != nil {
		_ = b.Close()
		return nil, nil, fmt.Errorf("build mediator: %w", err)
	}
	return client, b, nil
}
