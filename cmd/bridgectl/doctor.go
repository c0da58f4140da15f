package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	miniapp "github.com/MoveIndustries/mini-app-sdk"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the bridge connection, capabilities, and security posture",
	Long: `Dial the configured bridge endpoint and report what the host offers:
identity, negotiated capabilities, readiness, and the security policy the
mediator will enforce.

Exits non-zero when the bridge does not become ready.`,
	RunE: runDoctor,
}

type doctorReport struct {
	BridgeURL    string         `yaml:"bridge_url"`
	Host         hostReport     `yaml:"host"`
	Ready        bool           `yaml:"ready"`
	Connected    bool           `yaml:"connected"`
	Network      string         `yaml:"network,omitempty"`
	Capabilities []string       `yaml:"capabilities"`
	Security     securityReport `yaml:"security"`
}

type hostReport struct {
	Name     string `yaml:"name,omitempty"`
	Version  string `yaml:"version,omitempty"`
	Platform string `yaml:"platform,omitempty"`
	Origin   string `yaml:"origin,omitempty"`
}

type securityReport struct {
	MaxTransactionAmount  string   `yaml:"max_transaction_amount"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
	RateLimitWindow       string   `yaml:"rate_limit_window"`
	MaxRequestsPerWindow  int      `yaml:"max_requests_per_window"`
	StrictMode            bool     `yaml:"strict_mode"`
	ContentSecurityPolicy string   `yaml:"content_security_policy,omitempty"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := context.Background()

	b, err := dialBridge(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	ready := miniapp.WaitForReady(ctx, b, cfg.Bridge.ReadyTimeout) == nil

	client, err := miniapp.New(b, cfg.Security, miniapp.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("build mediator: %w", err)
	}
	policy := client.SecurityConfig()

	capabilities := []string{}
	for _, c := range b.Capabilities().List() {
		capabilities = append(capabilities, string(c))
	}

	host := b.Host()
	report := doctorReport{
		BridgeURL: cfg.Bridge.URL,
		Host: hostReport{
			Name:     host.Name,
			Version:  host.Version,
			Platform: host.Platform,
			Origin:   host.Origin,
		},
		Ready:        ready,
		Connected:    b.Connected(),
		Network:      b.Network(),
		Capabilities: capabilities,
		Security: securityReport{
			MaxTransactionAmount:  policy.MaxTransactionAmount,
			AllowedOrigins:        policy.AllowedOrigins,
			RateLimitWindow:       policy.RateLimitWindow.String(),
			MaxRequestsPerWindow:  policy.MaxRequestsPerWindow,
			StrictMode:            policy.StrictMode,
			ContentSecurityPolicy: client.ContentSecurityPolicy(),
		},
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	if !ready {
		return fmt.Errorf("bridge at %s is not ready", cfg.Bridge.URL)
	}
	return nil
}
