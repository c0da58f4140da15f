package miniapp

import (
	"context"
	"time"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

const (
	// DefaultReadyTimeout bounds WaitForReady when no timeout is given.
	DefaultReadyTimeout = 5 * time.Second

	readyPollInterval = 100 * time.Millisecond
)

// IsInstalled reports whether a host bridge is present. Safe to call
// with a nil bridge.
func IsInstalled(b bridge.Bridge) bool {
	return b != nil && b.Installed()
}

// WaitForReady polls the bridge's readiness probe until it reports true
// or the timeout expires. A non-positive timeout means
// DefaultReadyTimeout. Probe errors are treated as "not ready yet" and
// retried until the deadline. Context cancellation wins over the
// timeout.
func WaitForReady(ctx context.Context, b bridge.Bridge, timeout time.Duration) error {
	if b == nil {
		return security.NewUnavailableError(security.ErrCodeBridgeUnavailable, "Mini app bridge is not available")
	}
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		if ready, err := b.Ready(ctx); err == nil && ready {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return security.NewUnavailableError(security.ErrCodeBridgeNotReady, "Mini app bridge did not become ready")
		case <-ticker.C:
		}
	}
}
