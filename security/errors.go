package security

import (
	"errors"
	"fmt"
)

// ErrorKind classifies mediator failures. Delegated host failures are
// deliberately absent: errors returned by the bridge itself pass through
// to callers without being wrapped into this taxonomy.
type ErrorKind string

const (
	// KindThrottled marks requests stopped by the rate limiter.
	KindThrottled ErrorKind = "throttled"
	// KindInvalidInput marks requests rejected by validation before they
	// reached the host.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindReplaySuspected marks reused or expired message nonces.
	KindReplaySuspected ErrorKind = "replay_suspected"
	// KindUnavailable marks a missing, not ready, or incapable bridge.
	KindUnavailable ErrorKind = "unavailable"
)

// Stable error codes. Callers should branch on these (or the Is*
// predicates), never on message text.
const (
	ErrCodeRateLimited           = "ERR_RATE_LIMITED"
	ErrCodeInvalidTransaction    = "ERR_INVALID_TRANSACTION"
	ErrCodeInvalidAddress        = "ERR_INVALID_ADDRESS"
	ErrCodeInvalidOrigin         = "ERR_INVALID_ORIGIN"
	ErrCodeInvalidMessage        = "ERR_INVALID_MESSAGE"
	ErrCodeInvalidConfig         = "ERR_INVALID_CONFIG"
	ErrCodeReplaySuspected       = "ERR_REPLAY_SUSPECTED"
	ErrCodeBridgeUnavailable     = "ERR_BRIDGE_UNAVAILABLE"
	ErrCodeBridgeNotReady        = "ERR_BRIDGE_NOT_READY"
	ErrCodeCapabilityUnsupported = "ERR_CAPABILITY_UNSUPPORTED"
)

// Error is a structured mediator error.
type Error struct {
	Kind        ErrorKind
	Code        string
	Message     string
	Op          string
	Cause       error
	Recoverable bool
}

// Error implements the error interface. The message is returned as-is
// (plus any cause) because guard messages surface verbatim in calling
// applications.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by kind and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind && e.Code == t.Code
	}

	return false
}

// WithOp attaches the guarded operation name.
func (e *Error) WithOp(op string) *Error {
	e.Op = op

	return e
}

// NewThrottledError creates a rate-limit rejection for an operation.
func NewThrottledError(op string) *Error {
	return &Error{
		Kind:        KindThrottled,
		Code:        ErrCodeRateLimited,
		Message:     fmt.Sprintf("Rate limit exceeded for %s", op),
		Op:          op,
		Recoverable: true,
	}
}

// NewInvalidInputError creates a validation rejection.
func NewInvalidInputError(code, message string) *Error {
	return &Error{
		Kind:        KindInvalidInput,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewReplayError creates a nonce-reuse rejection.
func NewReplayError(message string) *Error {
	return &Error{
		Kind:        KindReplaySuspected,
		Code:        ErrCodeReplaySuspected,
		Message:     message,
		Recoverable: false,
	}
}

// NewUnavailableError creates a bridge-unavailable failure.
func NewUnavailableError(code, message string) *Error {
	return &Error{
		Kind:        KindUnavailable,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewUnsupportedError creates a failure for a capability the host did not
// negotiate.
func NewUnsupportedError(capability string) *Error {
	return &Error{
		Kind:        KindUnavailable,
		Code:        ErrCodeCapabilityUnsupported,
		Message:     fmt.Sprintf("Host does not support the %s capability", capability),
		Recoverable: false,
	}
}

// NewConfigError creates an invalid-configuration failure.
func NewConfigError(message string) *Error {
	return &Error{
		Kind:        KindInvalidInput,
		Code:        ErrCodeInvalidConfig,
		Message:     message,
		Recoverable: false,
	}
}

// IsThrottled checks if an error is a rate-limit rejection.
func IsThrottled(err error) bool {
	return isKind(err, KindThrottled)
}

// IsInvalidInput checks if an error is a validation rejection.
func IsInvalidInput(err error) bool {
	return isKind(err, KindInvalidInput)
}

// IsReplaySuspected checks if an error is a nonce-reuse rejection.
func IsReplaySuspected(err error) bool {
	return isKind(err, KindReplaySuspected)
}

// IsUnavailable checks if an error is a bridge-availability failure.
func IsUnavailable(err error) bool {
	return isKind(err, KindUnavailable)
}

// IsUnsupported checks if an error is a missing-capability failure.
func IsUnsupported(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeCapabilityUnsupported
	}

	return false
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}

	return false
}
