package miniapp

import (
	"context"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

// SendTransaction validates and submits an entry-function transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *bridge.TransactionPayload) (*bridge.TransactionResult, error) {
	if err := c.allow(ctx, opSendTransaction); err != nil {
		return nil, err
	}
	if err := c.validatePayload(ctx, opSendTransaction, tx, nil); err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "delegating transaction", "operation", opSendTransaction, "function", tx.Function)
	return c.bridge.SendTransaction(ctx, tx)
}

// SendMultiAgentTransaction submits a transaction with additional
// signers. The signer list is checked before the base payload: it must be
// non-empty and every entry must be a well-formed address.
func (c *Client) SendMultiAgentTransaction(ctx context.Context, tx *bridge.MultiAgentTransaction) (*bridge.TransactionResult, error) {
	if err := c.allow(ctx, opSendMultiAgent); err != nil {
		return nil, err
	}

	if tx == nil || len(tx.SecondarySigners) == 0 {
		err := security.NewInvalidInputError(security.ErrCodeInvalidTransaction, "Multi-agent transaction requires at least one secondary signer")
		c.emit(ctx, security.EventInvalidTransaction, err.Message, map[string]interface{}{
			"operation": opSendMultiAgent,
		})
		return nil, err
	}
	for _, signer := range tx.SecondarySigners {
		if !security.ValidAddress(signer) {
			err := security.NewInvalidInputError(security.ErrCodeInvalidAddress, "Invalid secondary signer address: "+signer)
			c.emit(ctx, security.EventInvalidTransaction, err.Message, map[string]interface{}{
				"operation": opSendMultiAgent,
				"signer":    signer,
			})
			return nil, err
		}
	}
	if err := c.validatePayload(ctx, opSendMultiAgent, &tx.Payload, nil); err != nil {
		return nil, err
	}

	return c.bridge.SendMultiAgentTransaction(ctx, tx)
}

// SendFeePayerTransaction submits a sponsored transaction. The fee-payer
// address is checked before the base payload.
func (c *Client) SendFeePayerTransaction(ctx context.Context, tx *bridge.FeePayerTransaction) (*bridge.TransactionResult, error) {
	if err := c.allow(ctx, opSendFeePayer); err != nil {
		return nil, err
	}

	if tx == nil || !security.ValidAddress(tx.FeePayer) {
		feePayer := ""
		if tx != nil {
			feePayer = tx.FeePayer
		}
		err := security.NewInvalidInputError(security.ErrCodeInvalidAddress, "Invalid fee payer address: "+feePayer)
		c.emit(ctx, security.EventInvalidTransaction, err.Message, map[string]interface{}{
			"operation": opSendFeePayer,
			"fee_payer": feePayer,
		})
		return nil, err
	}
	if err := c.validatePayload(ctx, opSendFeePayer, &tx.Payload, nil); err != nil {
		return nil, err
	}

	return c.bridge.SendFeePayerTransaction(ctx, tx)
}

// SendBatchTransactions submits several transactions as one host
// request. The batch consumes one rate-limit slot; every element must
// pass validation before anything is delegated.
func (c *Client) SendBatchTransactions(ctx context.Context, txs []*bridge.TransactionPayload) ([]*bridge.TransactionResult, error) {
	if err := c.allow(ctx, opSendBatch); err != nil {
		return nil, err
	}

	if len(txs) == 0 {
		return nil, security.NewInvalidInputError(security.ErrCodeInvalidTransaction, "Batch must contain at least one transaction")
	}
	for i, tx := range txs {
		if err := c.validatePayload(ctx, opSendBatch, tx, map[string]interface{}{"index": i}); err != nil {
			return nil, err
		}
	}

	return c.bridge.SendBatchTransactions(ctx, txs)
}

// SendScriptTransaction submits compiled script bytecode. Scripts have
// no entry-function name to validate; the bytecode just has to be
// present.
func (c *Client) SendScriptTransaction(ctx context.Context, tx *bridge.ScriptTransaction) (*bridge.TransactionResult, error) {
	if err := c.allow(ctx, opSendScript); err != nil {
		return nil, err
	}

	if tx == nil || tx.Bytecode == "" {
		err := security.NewInvalidInputError(security.ErrCodeInvalidTransaction, "Script transaction requires non-empty bytecode")
		c.emit(ctx, security.EventInvalidTransaction, err.Message, map[string]interface{}{
			"operation": opSendScript,
		})
		return nil, err
	}

	return c.bridge.SendScriptTransaction(ctx, tx)
}

// validatePayload runs the transaction validator and emits an
// invalid_transaction event on failure. The validator's error is
// returned unchanged; extra metadata (e.g. a batch index) is attached to
// the event only.
func (c *Client) validatePayload(ctx context.Context, op string, tx *bridge.TransactionPayload, extra map[string]interface{}) error {
	err := c.validator.Validate(tx)
	if err == nil {
		return nil
	}

	metadata := map[string]interface{}{"operation": op}
	for k, v := range extra {
		metadata[k] = v
	}
	c.emit(ctx, security.EventInvalidTransaction, err.Error(), metadata)
	return err
}
