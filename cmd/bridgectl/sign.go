package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

var (
	signMessage string
	signNonce   string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a message through the security mediator",
	Long: `Ask the host wallet to sign a message. The mediator sanitizes the
message and attaches a single-use nonce before the host sees it; pass
--nonce to supply your own instead.`,
	RunE: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVar(&signMessage, "message", "", "message to sign (required)")
	signCmd.Flags().StringVar(&signNonce, "nonce", "", "single-use nonce (generated when empty)")
	_ = signCmd.MarkFlagRequired("message")
}

func runSign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := context.Background()

	client, b, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	result, err := client.SignMessage(ctx, &bridge.SignMessagePayload{
		Message: signMessage,
		Nonce:   signNonce,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Signature: %s\n", result.Signature)
	fmt.Printf("Message:   %s\n", result.FullMessage)
	fmt.Printf("Nonce:     %s\n", result.Nonce)
	return nil
}
