package security

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	sdkmath "cosmossdk.io/math"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

var (
	// functionIDPattern matches fully qualified entry function names:
	// 0x<hex>::<module>::<function>.
	functionIDPattern = regexp.MustCompile(`^0x[0-9a-fA-F]+::[a-zA-Z_][a-zA-Z0-9_]*::[a-zA-Z_][a-zA-Z0-9_]*$`)
	// addressPattern matches account addresses: 0x plus 1-64 hex digits.
	// No checksum and no canonical-length rule beyond the 32-byte cap.
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)
)

// ValidAddress reports whether s is a well-formed account address.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// TransactionValidator checks transaction payloads structurally and
// enforces the configured transfer ceiling. Validation is pure: no state
// is read or written beyond the payload and the ceiling.
type TransactionValidator struct {
	maxAmount sdkmath.Int
}

// NewTransactionValidator builds a validator from the policy. Fails when
// the configured ceiling is not an integer.
func NewTransactionValidator(cfg Config) (*TransactionValidator, error) {
	cfg = cfg.Normalized()
	maxAmount, ok := sdkmath.NewIntFromString(cfg.MaxTransactionAmount)
	if !ok {
		return nil, NewConfigError(fmt.Sprintf("max_transaction_amount %q is not an integer", cfg.MaxTransactionAmount))
	}
	return &TransactionValidator{maxAmount: maxAmount}, nil
}

// MaxAmount returns the transfer ceiling in base units.
func (v *TransactionValidator) MaxAmount() string {
	return v.maxAmount.String()
}

// Validate checks a payload and returns nil when it may be forwarded.
// Checks run in order and stop at the first failure:
//
//  1. function present
//  2. arguments list present (nil slice fails, empty passes)
//  3. type arguments list present
//  4. function matches the entry-function pattern
//  5. transfer amount within the ceiling
//  6. every 0x-prefixed string argument is a well-formed address
func (v *TransactionValidator) Validate(tx *bridge.TransactionPayload) error {
	if tx == nil || tx.Function == "" {
		return NewInvalidInputError(ErrCodeInvalidTransaction, "Transaction function is required")
	}
	if tx.Arguments == nil {
		return NewInvalidInputError(ErrCodeInvalidTransaction, "Transaction arguments must be a list")
	}
	if tx.TypeArguments == nil {
		return NewInvalidInputError(ErrCodeInvalidTransaction, "Transaction type arguments must be a list")
	}
	if !functionIDPattern.MatchString(tx.Function) {
		return NewInvalidInputError(ErrCodeInvalidTransaction, fmt.Sprintf("Invalid function format: %s", tx.Function))
	}
	if err := v.checkTransferCeiling(tx); err != nil {
		return err
	}
	for _, arg := range tx.Arguments {
		s, ok := arg.(string)
		if !ok || !strings.HasPrefix(s, "0x") {
			continue
		}
		if !ValidAddress(s) {
			return NewInvalidInputError(ErrCodeInvalidAddress, fmt.Sprintf("Invalid address format in arguments: %s", s))
		}
	}
	return nil
}

// checkTransferCeiling treats the last argument of a ::transfer call as
// the amount in base units. The amount is parsed with math/big, not
// sdkmath.Int: sdkmath caps integers at 256 bits and the ceiling must
// hold for wider numerals too. A last argument that is not a string, or
// not an integer, is left for the other checks rather than rejected here.
func (v *TransactionValidator) checkTransferCeiling(tx *bridge.TransactionPayload) error {
	if !strings.Contains(tx.Function, "::transfer") || len(tx.Arguments) == 0 {
		return nil
	}
	s, ok := tx.Arguments[len(tx.Arguments)-1].(string)
	if !ok {
		return nil
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil
	}
	if amount.Cmp(v.maxAmount.BigInt()) > 0 {
		return NewInvalidInputError(ErrCodeInvalidTransaction, fmt.Sprintf("Transaction amount exceeds maximum allowed (%s)", v.maxAmount))
	}
	return nil
}
