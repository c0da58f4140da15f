package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

var viewCmd = &cobra.Command{
	Use:   "view <function> [args...]",
	Short: "Call a read-only view function",
	Long: `Call an on-chain view function through the mediator and print the
results as JSON. Arguments after the function name are passed as view
function arguments:

  bridgectl view 0x1::coin::balance 0xabc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
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

	viewArgs := make([]interface{}, 0, len(args)-1)
	for _, a := range args[1:] {
		viewArgs = append(viewArgs, a)
	}

	results, err := client.View(ctx, &bridge.ViewPayload{
		Function:      args[0],
		TypeArguments: []string{},
		Arguments:     viewArgs,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
