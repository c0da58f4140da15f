package wsbridge

import (
	"context"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

// Connect asks the host to establish a wallet session and caches the
// resulting account.
func (b *Bridge) Connect(ctx context.Context) (*bridge.Account, error) {
	var account bridge.Account
	if err := b.call(ctx, "wallet.connect", nil, &account); err != nil {
		return nil, err
	}

	b.stateMu.Lock()
	b.connected = true
	b.address = account.Address
	b.stateMu.Unlock()

	return &account, nil
}

// Account returns the currently connected account.
func (b *Bridge) Account(ctx context.Context) (*bridge.Account, error) {
	var account bridge.Account
	if err := b.call(ctx, "wallet.account", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Balance returns the account balance in base units as a decimal string.
func (b *Bridge) Balance(ctx context.Context) (string, error) {
	var balance string
	if err := b.call(ctx, "wallet.balance", nil, &balance); err != nil {
		return "", err
	}
	return balance, nil
}

// LaunchContext returns how the host opened this mini app.
func (b *Bridge) LaunchContext(ctx context.Context) (*bridge.LaunchContext, error) {
	var lc bridge.LaunchContext
	if err := b.call(ctx, "app.launchContext", nil, &lc); err != nil {
		return nil, err
	}
	return &lc, nil
}

// Theme returns the host UI theme.
func (b *Bridge) Theme(ctx context.Context) (*bridge.Theme, error) {
	var theme bridge.Theme
	if err := b.call(ctx, "app.theme", nil, &theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

// ScanQRCode opens the host scanner and returns the scanned text.
func (b *Bridge) ScanQRCode(ctx context.Context) (string, error) {
	var scanned string
	if err := b.call(ctx, "app.scanQRCode", nil, &scanned); err != nil {
		return "", err
	}
	return scanned, nil
}

// SendTransaction submits an entry-function transaction.
func (b *Bridge) SendTransaction(ctx context.Context, tx *bridge.TransactionPayload) (*bridge.TransactionResult, error) {
	var result bridge.TransactionResult
	if err := b.call(ctx, "wallet.sendTransaction", tx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendMultiAgentTransaction submits a transaction with secondary signers.
func (b *Bridge) SendMultiAgentTransaction(ctx context.Context, tx *bridge.MultiAgentTransaction) (*bridge.TransactionResult, error) {
	var result bridge.TransactionResult
	if err := b.call(ctx, "wallet.sendMultiAgentTransaction", tx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendFeePayerTransaction submits a sponsored transaction.
func (b *Bridge) SendFeePayerTransaction(ctx context.Context, tx *bridge.FeePayerTransaction) (*bridge.TransactionResult, error) {
	var result bridge.TransactionResult
	if err := b.call(ctx, "wallet.sendFeePayerTransaction", tx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendBatchTransactions submits several transactions in one host request.
func (b *Bridge) SendBatchTransactions(ctx context.Context, txs []*bridge.TransactionPayload) ([]*bridge.TransactionResult, error) {
	var results []*bridge.TransactionResult
	if err := b.call(ctx, "wallet.sendBatchTransactions", txs, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SendScriptTransaction submits compiled script bytecode.
func (b *Bridge) SendScriptTransaction(ctx context.Context, tx *bridge.ScriptTransaction) (*bridge.TransactionResult, error) {
	var result bridge.TransactionResult
	if err := b.call(ctx, "wallet.sendScriptTransaction", tx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// View evaluates a read-only function on the host chain.
func (b *Bridge) View(ctx context.Context, call *bridge.ViewPayload) ([]interface{}, error) {
	var values []interface{}
	if err := b.call(ctx, "wallet.view", call, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// WaitForTransaction blocks until the host reports the transaction's
// terminal status.
func (b *Bridge) WaitForTransaction(ctx context.Context, hash string) (*bridge.TransactionStatus, error) {
	var status bridge.TransactionStatus
	params := map[string]string{"hash": hash}
	if err := b.call(ctx, "wallet.waitForTransaction", params, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SignMessage asks the host wallet to sign a message.
func (b *Bridge) SignMessage(ctx context.Context, msg *bridge.SignMessagePayload) (*bridge.SignMessageResult, error) {
	var result bridge.SignMessageResult
	if err := b.call(ctx, "wallet.signMessage", msg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubscribeTransactionUpdates registers for host transaction.update
// notifications. The channel closes when the connection does; slow
// consumers lose updates rather than stalling the read loop.
//
// The channel is registered before the subscribe call goes out so no
// update pushed right after the host's ack can be missed.
func (b *Bridge) SubscribeTransactionUpdates(ctx context.Context) (<-chan bridge.TransactionUpdate, error) {
	ch := make(chan bridge.TransactionUpdate, subscriberBuffer)

	b.mu.Lock()
	closed := b.closed
	if !closed {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	if closed {
		return nil, &bridge.RemoteError{Code: bridge.CodeDisconnected, Message: "bridge connection is closed"}
	}

	if err := b.call(ctx, "wallet.subscribeTransactionUpdates", nil, nil); err != nil {
		b.removeSub(ch)
		return nil, err
	}
	return ch, nil
}

func (b *Bridge) removeSub(ch chan bridge.TransactionUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
