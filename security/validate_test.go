package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

func newTestValidator(t *testing.T) *TransactionValidator {
	t.Helper()
	v, err := NewTransactionValidator(DefaultConfig())
	require.NoError(t, err)
	return v
}

func validTransferPayload() *bridge.TransactionPayload {
	return &bridge.TransactionPayload{
		Function:      "0x1::coin::transfer",
		TypeArguments: []string{"0x1::aptos_coin::AptosCoin"},
		Arguments:     []interface{}{"0xabc", "100"},
	}
}

func TestValidateAcceptsWellFormedPayload(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Validate(validTransferPayload()))

	assert.NoError(t, v.Validate(&bridge.TransactionPayload{
		Function:      "0xCAFE::marketplace::list_item",
		TypeArguments: []string{},
		Arguments:     []interface{}{},
	}))
}

func TestValidateStructuralFailures(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name    string
		payload *bridge.TransactionPayload
		message string
	}{
		{
			name:    "nil payload",
			payload: nil,
			message: "Transaction function is required",
		},
		{
			name:    "empty function",
			payload: &bridge.TransactionPayload{TypeArguments: []string{}, Arguments: []interface{}{}},
			message: "Transaction function is required",
		},
		{
			name:    "missing arguments",
			payload: &bridge.TransactionPayload{Function: "0x1::coin::transfer", TypeArguments: []string{}},
			message: "Transaction arguments must be a list",
		},
		{
			name:    "missing type arguments",
			payload: &bridge.TransactionPayload{Function: "0x1::coin::transfer", Arguments: []interface{}{}},
			message: "Transaction type arguments must be a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.payload)
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidateFunctionFormat(t *testing.T) {
	v := newTestValidator(t)

	invalid := []string{
		"coin::transfer",
		"0x1::coin",
		"0x1:coin:transfer",
		"0xZZ::coin::transfer",
		"0x1::9coin::transfer",
		"0x1::coin::transfer::extra",
		"0x1::coin::transfer ",
		"1::coin::transfer",
	}
	for _, fn := range invalid {
		err := v.Validate(&bridge.TransactionPayload{
			Function:      fn,
			TypeArguments: []string{},
			Arguments:     []interface{}{},
		})
		require.Error(t, err, "function %q", fn)
		assert.True(t, IsInvalidInput(err))
	}

	valid := []string{
		"0x1::coin::transfer",
		"0xabcDEF123::my_module::do_thing_2",
		"0x1::_private::_f",
	}
	for _, fn := range valid {
		assert.NoError(t, v.Validate(&bridge.TransactionPayload{
			Function:      fn,
			TypeArguments: []string{},
			Arguments:     []interface{}{},
		}), "function %q", fn)
	}
}

func TestValidateTransferCeiling(t *testing.T) {
	v := newTestValidator(t)

	t.Run("amount over ceiling fails with exact message", func(t *testing.T) {
		err := v.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"0xabc", "2000000000000"},
		})
		require.Error(t, err)
		assert.Equal(t, "Transaction amount exceeds maximum allowed (1000000000000)", err.Error())
		assert.True(t, IsInvalidInput(err))
	})

	t.Run("amount at ceiling passes", func(t *testing.T) {
		assert.NoError(t, v.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"0xabc", "1000000000000"},
		}))
	})

	t.Run("amount beyond uint64 still compared exactly", func(t *testing.T) {
		err := v.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"0xabc", "99999999999999999999999999999999"},
		})
		require.Error(t, err)
		assert.Equal(t, "Transaction amount exceeds maximum allowed (1000000000000)", err.Error())
	})

	t.Run("amount beyond 256 bits still compared exactly", func(t *testing.T) {
		err := v.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"0xabc", strings.Repeat("9", 80)},
		})
		require.Error(t, err)
		assert.True(t, IsInvalidInput(err))
		assert.Equal(t, "Transaction amount exceeds maximum allowed (1000000000000)", err.Error())
	})

	t.Run("only transfer functions are ceiling-checked", func(t *testing.T) {
		assert.NoError(t, v.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::mint",
			TypeArguments: []string{},
			Arguments:     []interface{}{"2000000000000"},
		}))
	})

	t.Run("non-string last argument is skipped", func(t *testing.T) {
		assert.NoError(t, v.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"0xabc", float64(2000000000000)},
		}))
	})

	t.Run("non-integer last argument is skipped", func(t *testing.T) {
		assert.NoError(t, v.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"not-a-number"},
		}))
	})

	t.Run("custom ceiling appears in the message", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxTransactionAmount = "500"
		custom, err := NewTransactionValidator(cfg)
		require.NoError(t, err)

		vErr := custom.Validate(&bridge.TransactionPayload{
			Function:      "0x1::coin::transfer",
			TypeArguments: []string{},
			Arguments:     []interface{}{"501"},
		})
		require.Error(t, vErr)
		assert.Equal(t, "Transaction amount exceeds maximum allowed (500)", vErr.Error())
	})
}

func TestValidateAddressArguments(t *testing.T) {
	v := newTestValidator(t)

	err := v.Validate(&bridge.TransactionPayload{
		Function:      "0x1::coin::transfer",
		TypeArguments: []string{},
		Arguments:     []interface{}{"0xZZZZ", "100"},
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid address format in arguments: 0xZZZZ", err.Error())

	// non-address strings and non-strings are not address-checked
	assert.NoError(t, v.Validate(&bridge.TransactionPayload{
		Function:      "0x1::coin::transfer",
		TypeArguments: []string{},
		Arguments:     []interface{}{"alice", 42, true, "100"},
	}))
}

func TestValidateCeilingBeforeAddressCheck(t *testing.T) {
	v := newTestValidator(t)

	// when both would fail, the ceiling error wins: arguments contain an
	// invalid address and an over-ceiling amount
	err := v.Validate(&bridge.TransactionPayload{
		Function:      "0x1::coin::transfer",
		TypeArguments: []string{},
		Arguments:     []interface{}{"0xNOTHEX", "2000000000000"},
	})
	require.Error(t, err)
	assert.Equal(t, "Transaction amount exceeds maximum allowed (1000000000000)", err.Error())
}

func TestValidAddress(t *testing.T) {
	valid := []string{
		"0x1",
		"0xabc",
		"0xABCDEF0123456789",
		"0x" + "f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0", // 64 hex chars
	}
	for _, addr := range valid {
		assert.True(t, ValidAddress(addr), "address %q", addr)
	}

	invalid := []string{
		"",
		"0x",
		"1abc",
		"0xg1",
		"0x " + "ff",
		"0x" + "f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0ff", // 66 hex chars
	}
	for _, addr := range invalid {
		assert.False(t, ValidAddress(addr), "address %q", addr)
	}
}

func TestNewTransactionValidatorRejectsBadCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTransactionAmount = "12.5"

	_, err := NewTransactionValidator(cfg)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestValidatorMaxAmount(t *testing.T) {
	v := newTestValidator(t)
	assert.Equal(t, DefaultMaxTransactionAmount, v.MaxAmount())
}
