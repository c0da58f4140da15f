package miniapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

func TestSendTransactionValidatesBeforeDelegation(t *testing.T) {
	mock := newMockBridge()
	sink := &recordingSink{}
	client := newTestClient(t, mock, nil, WithEventSink(sink))

	t.Run("transfer over ceiling", func(t *testing.T) {
		_, err := client.SendTransaction(context.Background(), &bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"0xabc", "2000000000000"},
		})

		require.Error(t, err)
		assert.Equal(t, "Transaction amount exceeds maximum allowed (1000000000000)", err.Error())
		assert.Empty(t, mock.recorded())
		assert.Equal(t, []security.EventKind{security.EventInvalidTransaction}, sink.kinds())
	})

	t.Run("malformed function", func(t *testing.T) {
		_, err := client.SendTransaction(context.Background(), &bridge.TransactionPayload{
			Function:      "transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{},
		})

		require.Error(t, err)
		assert.True(t, security.IsInvalidInput(err))
		assert.Empty(t, mock.recorded())
	})

	t.Run("nil payload", func(t *testing.T) {
		_, err := client.SendTransaction(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, "Transaction function is required", err.Error())
	})
}

func TestSendMultiAgentTransaction(t *testing.T) {
	t.Run("empty signer list fails before payload validation", func(t *testing.T) {
		mock := newMockBridge()
		sink := &recordingSink{}
		client := newTestClient(t, mock, nil, WithEventSink(sink))

		// the payload would also fail base validation (nil argument
		// lists); the signer error must win and the bridge stay unused
		_, err := client.SendMultiAgentTransaction(context.Background(), &bridge.MultiAgentTransaction{
			Payload:          bridge.TransactionPayload{Function: "not even a function"},
			SecondarySigners: []string{},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires at least one secondary signer")
		assert.Empty(t, mock.recorded())
	})

	t.Run("nil transaction", func(t *testing.T) {
		client := newTestClient(t, newMockBridge(), nil)

		_, err := client.SendMultiAgentTransaction(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires at least one secondary signer")
	})

	t.Run("invalid signer named in error", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		_, err := client.SendMultiAgentTransaction(context.Background(), &bridge.MultiAgentTransaction{
			Payload: bridge.TransactionPayload{
				Function:      "0x1::escrow::settle",
				TypeArguments: []string{},
				Arguments:     []interface{}{},
			},
			SecondarySigners: []string{"0xdef", "0xNOPE"},
		})

		require.Error(t, err)
		assert.Equal(t, "Invalid secondary signer address: 0xNOPE", err.Error())
		assert.Empty(t, mock.recorded())
	})

	t.Run("base payload still validated", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		_, err := client.SendMultiAgentTransaction(context.Background(), &bridge.MultiAgentTransaction{
			Payload:          bridge.TransactionPayload{Function: "0x1::escrow::settle"},
			SecondarySigners: []string{"0xdef"},
		})

		require.Error(t, err)
		assert.Equal(t, "Transaction arguments must be a list", err.Error())
		assert.Empty(t, mock.recorded())
	})

	t.Run("valid transaction delegates", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		result, err := client.SendMultiAgentTransaction(context.Background(), &bridge.MultiAgentTransaction{
			Payload: bridge.TransactionPayload{
				Function:      "0x1::escrow::settle",
				TypeArguments: []string{},
				Arguments:     []interface{}{"0xabc"},
			},
			SecondarySigners: []string{"0xdef"},
		})

		require.NoError(t, err)
		assert.Equal(t, "0x222", result.Hash)
		assert.Equal(t, []string{"SendMultiAgentTransaction"}, mock.recorded())
	})
}

func TestSendFeePayerTransaction(t *testing.T) {
	t.Run("missing fee payer", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		_, err := client.SendFeePayerTransaction(context.Background(), &bridge.FeePayerTransaction{
			Payload: bridge.TransactionPayload{
				Function:      "0x1::coin::transfer",
				TypeArguments: []string{},
				Arguments:     []interface{}{},
			},
		})

		require.Error(t, err)
		assert.True(t, security.IsInvalidInput(err))
		assert.Empty(t, mock.recorded())
	})

	t.Run("malformed fee payer named in error", func(t *testing.T) {
		client := newTestClient(t, newMockBridge(), nil)

		_, err := client.SendFeePayerTransaction(context.Background(), &bridge.FeePayerTransaction{
			Payload: bridge.TransactionPayload{
				Function:      "0x1::coin::transfer",
				TypeArguments: []string{},
				Arguments:     []interface{}{},
			},
			FeePayer: "0xXYZ",
		})

		require.Error(t, err)
		assert.Equal(t, "Invalid fee payer address: 0xXYZ", err.Error())
	})

	t.Run("nil transaction", func(t *testing.T) {
		client := newTestClient(t, newMockBridge(), nil)

		_, err := client.SendFeePayerTransaction(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, security.IsInvalidInput(err))
	})

	t.Run("valid transaction delegates", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		result, err := client.SendFeePayerTransaction(context.Background(), &bridge.FeePayerTransaction{
			Payload: bridge.TransactionPayload{
				Function:      "0x1::coin::transfer",
				TypeArguments: []string{},
				Arguments:     []interface{}{"0xabc", "100"},
			},
			FeePayer: "0xfee",
		})

		require.NoError(t, err)
		assert.Equal(t, "0x333", result.Hash)
	})
}

func TestSendBatchTransactions(t *testing.T) {
	valid := func() *bridge.TransactionPayload {
		return &bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"0xabc", "100"},
		}
	}

	t.Run("empty batch", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		_, err := client.SendBatchTransactions(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, security.IsInvalidInput(err))
		assert.Empty(t, mock.recorded())
	})

	t.Run("batch consumes one rate-limit slot", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, func(cfg *security.Config) {
			cfg.MaxRequestsPerWindow = 1
		})

		_, err := client.SendBatchTransactions(context.Background(), []*bridge.TransactionPayload{valid(), valid(), valid()})
		require.NoError(t, err)

		_, err = client.SendBatchTransactions(context.Background(), []*bridge.TransactionPayload{valid()})
		assert.True(t, security.IsThrottled(err))
	})

	t.Run("invalid element stops the whole batch", func(t *testing.T) {
		mock := newMockBridge()
		sink := &recordingSink{}
		client := newTestClient(t, mock, nil, WithEventSink(sink))

		bad := valid()
		bad.Arguments = []interface{}{"0xabc", "2000000000000"}

		_, err := client.SendBatchTransactions(context.Background(), []*bridge.TransactionPayload{valid(), bad, valid()})
		require.Error(t, err)
		// the validator's message, unchanged
		assert.Equal(t, "Transaction amount exceeds maximum allowed (1000000000000)", err.Error())
		assert.Empty(t, mock.recorded())
		// the failing position travels in the event metadata
		assert.Equal(t, 1, sink.last().Metadata["index"])
	})

	t.Run("valid batch delegates in order", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		batch := []*bridge.TransactionPayload{valid(), valid()}
		results, err := client.SendBatchTransactions(context.Background(), batch)
		require.NoError(t, err)
		assert.Len(t, results, 2)
		// the bridge receives the caller's slice untouched
		assert.Equal(t, batch, mock.lastBatch)
	})
}

func TestSendScriptTransaction(t *testing.T) {
	t.Run("empty bytecode", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		_, err := client.SendScriptTransaction(context.Background(), &bridge.ScriptTransaction{})
		require.Error(t, err)
		assert.Equal(t, "Script transaction requires non-empty bytecode", err.Error())
		assert.Empty(t, mock.recorded())

		_, err = client.SendScriptTransaction(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("script payloads skip entry-function validation", func(t *testing.T) {
		mock := newMockBridge()
		client := newTestClient(t, mock, nil)

		result, err := client.SendScriptTransaction(context.Background(), &bridge.ScriptTransaction{
			Bytecode:      "0xa11ceb0b",
			TypeArguments: []string{},
			Arguments:     []interface{}{},
		})

		require.NoError(t, err)
		assert.Equal(t, "0x555", result.Hash)
	})
}
