// Package miniapp is a security-mediating SDK for mini apps embedded in
// a host wallet. A Client wraps a bridge.Bridge and enforces rate limits,
// transaction validation, message sanitization, and nonce-based replay
// protection before any privileged operation reaches the host. Results
// and failures coming back from the host pass through unchanged.
//
// Construct a Client with New, providing a transport (wsbridge ships one)
// and a security policy:
//
//	b, err := wsbridge.Dial(ctx, "wss://wallet.example.com/bridge")
//	if err != nil { ... }
//	client, err := miniapp.New(b, security.DefaultConfig())
package miniapp

import (
	"context"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/logging"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

// Guarded operation identifiers. These feed the rate limiter and name
// the operation in errors and security events.
const (
	opConnect         = "connect"
	opSendTransaction = "sendTransaction"
	opSignMessage     = "signMessage"
	opSendMultiAgent  = "sendMultiAgentTransaction"
	opSendFeePayer    = "sendFeePayerTransaction"
	opSendBatch       = "sendBatchTransactions"
	opSendScript      = "sendScriptTransaction"
	opScanQRCode      = "scanQRCode"
	opView            = "view"
)

// Client is the security mediator between application code and the host
// bridge. All methods are safe for concurrent use. Limiter and nonce
// state belong to the Client and are never shared between instances.
type Client struct {
	bridge    bridge.Bridge
	cfg       security.Config
	limiter   *security.RateLimiter
	nonces    *security.NonceRegistry
	validator *security.TransactionValidator
	logger    logging.Logger
	sinks     []security.EventSink
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for diagnostics and, in strict mode,
// for security events.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithEventSink adds a sink that receives every security event, in
// addition to the strict-mode log sink.
func WithEventSink(sink security.EventSink) Option {
	return func(c *Client) {
		if sink != nil {
			c.sinks = append(c.sinks, sink)
		}
	}
}

// New creates a mediator over the given bridge. The config is normalized
// (zero values replaced by defaults) and validated; a nil bridge is an
// unavailable error.
func New(b bridge.Bridge, cfg security.Config, opts ...Option) (*Client, error) {
	if b == nil {
		return nil, security.NewUnavailableError(security.ErrCodeBridgeUnavailable, "Mini app bridge is not available")
	}

	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	validator, err := security.NewTransactionValidator(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		bridge:    b,
		cfg:       cfg,
		limiter:   security.NewRateLimiter(cfg.RateLimitWindow, cfg.MaxRequestsPerWindow),
		nonces:    security.NewNonceRegistry(),
		validator: validator,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogger(logging.DefaultConfig())
	}
	c.logger = c.logger.WithComponent("miniapp")

	if cfg.StrictMode {
		c.sinks = append(c.sinks, security.NewLogSink(c.logger))
	}

	return c, nil
}

// SecurityConfig returns the normalized policy the mediator enforces.
func (c *Client) SecurityConfig() security.Config {
	return c.cfg
}

// ContentSecurityPolicy returns the CSP header value for the page
// embedding this mini app, or "" when CSP is disabled.
func (c *Client) ContentSecurityPolicy() string {
	return c.cfg.ContentSecurityPolicy()
}

// allow consumes rate-limit budget for op. On denial it emits a
// rate_limit event and returns a throttled error.
func (c *Client) allow(ctx context.Context, op string) error {
	if c.limiter.Allow(op) {
		return nil
	}

	err := security.NewThrottledError(op)
	c.emit(ctx, security.EventRateLimit, err.Message, map[string]interface{}{
		"operation": op,
	})
	return err
}

// emit fans a security event out to the configured sinks. Emission is
// best-effort side information and never alters the guarded operation's
// outcome.
func (c *Client) emit(ctx context.Context, kind security.EventKind, details string, metadata map[string]interface{}) {
	if len(c.sinks) == 0 {
		return
	}

	event := security.NewEvent(kind, details, metadata)
	for _, sink := range c.sinks {
		sink.Record(ctx, event)
	}
}

// Connect establishes a wallet session. Rate limited; when an
// allowed-origin list is configured the host's reported origin must pass
// it.
func (c *Client) Connect(ctx context.Context) (*bridge.Account, error) {
	if err := c.allow(ctx, opConnect); err != nil {
		return nil, err
	}

	if origin := c.bridge.Host().Origin; origin != "" && !c.cfg.OriginAllowed(origin) {
		err := security.NewInvalidInputError(security.ErrCodeInvalidOrigin, "Host origin not allowed: "+origin)
		c.emit(ctx, security.EventInvalidOrigin, err.Message, map[string]interface{}{
			"operation": opConnect,
			"origin":    origin,
		})
		return nil, err
	}

	c.logger.Debug(ctx, "connecting to host wallet")
	return c.bridge.Connect(ctx)
}

// ScanQRCode opens the host QR scanner. Rate limited: scan results feed
// transaction flows.
func (c *Client) ScanQRCode(ctx context.Context) (string, error) {
	if err := c.allow(ctx, opScanQRCode); err != nil {
		return "", err
	}
	return c.bridge.ScanQRCode(ctx)
}

// View evaluates a read-only function on the host. Rate limited.
func (c *Client) View(ctx context.Context, call *bridge.ViewPayload) ([]interface{}, error) {
	if err := c.allow(ctx, opView); err != nil {
		return nil, err
	}
	if call == nil || call.Function == "" {
		return nil, security.NewInvalidInputError(security.ErrCodeInvalidTransaction, "View function is required")
	}
	return c.bridge.View(ctx, call)
}
