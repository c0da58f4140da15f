package miniapp

import (
	"context"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

// Passthrough operations. These carry no asset-movement or replay risk,
// so they forward to the bridge without rate limiting or validation.

// Connected reports whether a wallet session is established.
func (c *Client) Connected() bool {
	return c.bridge.Connected()
}

// Address returns the connected account address, or "" when not
// connected.
func (c *Client) Address() string {
	return c.bridge.Address()
}

// Network returns the chain network name reported by the host.
func (c *Client) Network() string {
	return c.bridge.Network()
}

// Installed reports whether a host bridge is present.
func (c *Client) Installed() bool {
	return c.bridge.Installed()
}

// Host describes the host wallet as reported during the handshake.
func (c *Client) Host() bridge.HostInfo {
	return c.bridge.Host()
}

// Capabilities returns the host's negotiated optional capability set.
func (c *Client) Capabilities() bridge.CapabilitySet {
	return c.bridge.Capabilities()
}

// Ready reports whether the host has finished initializing.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	return c.bridge.Ready(ctx)
}

// Account returns the connected account.
func (c *Client) Account(ctx context.Context) (*bridge.Account, error) {
	return c.bridge.Account(ctx)
}

// Balance returns the connected account's balance in base units.
func (c *Client) Balance(ctx context.Context) (string, error) {
	return c.bridge.Balance(ctx)
}

// LaunchContext describes how the mini app was opened.
func (c *Client) LaunchContext(ctx context.Context) (*bridge.LaunchContext, error) {
	return c.bridge.LaunchContext(ctx)
}

// Theme returns the host UI theme.
func (c *Client) Theme(ctx context.Context) (*bridge.Theme, error) {
	return c.bridge.Theme(ctx)
}

// WaitForTransaction blocks until the host reports a terminal status for
// the transaction hash.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) (*bridge.TransactionStatus, error) {
	return c.bridge.WaitForTransaction(ctx, hash)
}

// SubscribeTransactionUpdates streams host push notifications about
// pending transactions. The channel closes when the subscription ends.
func (c *Client) SubscribeTransactionUpdates(ctx context.Context) (<-chan bridge.TransactionUpdate, error) {
	return c.bridge.SubscribeTransactionUpdates(ctx)
}
