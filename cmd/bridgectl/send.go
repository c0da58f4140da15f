package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	miniapp "github.com/MoveIndustries/mini-app-sdk"
	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

var (
	sendBatch bool
	sendWait  bool
)

var sendCmd = &cobra.Command{
	Use:   "send <payload.json>",
	Short: "Send a transaction through the security mediator",
	Long: `Read a transaction payload from a JSON file and submit it through the
mediator, which applies rate limiting and validation before the host
sees it.

The file holds a single payload, or a JSON array of payloads with
--batch:

  {"function": "0x1::coin::transfer", "type_arguments": [], "arguments": ["0xabc", "100"]}

With --wait the command polls until the host reports a terminal status.`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendBatch, "batch", false, "treat the file as a JSON array of payloads")
	sendCmd.Flags().BoolVar(&sendWait, "wait", false, "wait for the terminal transaction status")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := context.Background()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	client, b, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	if sendBatch {
		return sendBatchFile(ctx, client, data)
	}

	var tx bridge.TransactionPayload
	if err := json.Unmarshal(data, &tx); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}

	result, err := client.SendTransaction(ctx, &tx)
	if err != nil {
		return err
	}
	fmt.Println(result.Hash)

	if sendWait {
		return waitAndReport(ctx, client, result.Hash)
	}
	return nil
}

func sendBatchFile(ctx context.Context, client *miniapp.Client, data []byte) error {
	var txs []*bridge.TransactionPayload
	if err := json.Unmarshal(data, &txs); err != nil {
		return fmt.Errorf("parse batch payload: %w", err)
	}

	results, err := client.SendBatchTransactions(ctx, txs)
	if err != nil {
		return err
	}
	for _, result := range results {
		fmt.Println(result.Hash)
	}

	if sendWait {
		for _, result := range results {
			if err := waitAndReport(ctx, client, result.Hash); err != nil {
				return err
			}
		}
	}
	return nil
}

func waitAndReport(ctx context.Context, client *miniapp.Client, hash string) error {
	status, err := client.WaitForTransaction(ctx, hash)
	if err != nil {
		return fmt.Errorf("wait for %s: %w", hash, err)
	}

	if !status.Success {
		return fmt.Errorf("transaction %s failed: %s", status.Hash, status.VMStatus)
	}
	fmt.Printf("%s committed (gas used: %d)\n", status.Hash, status.GasUsed)
	return nil
}
