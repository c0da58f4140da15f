// Package wsbridge implements bridge.Bridge over a WebSocket JSON
// envelope. One goroutine owns the read side of the connection and
// routes reply frames to in-flight calls and host notifications to
// subscribers.
package wsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/internal/rpc"
	"github.com/MoveIndustries/mini-app-sdk/logging"
)

// DefaultHandshakeTimeout bounds the bridge.handshake call during Dial
// when no WithHandshakeTimeout option is given.
const DefaultHandshakeTimeout = 5 * time.Second

const subscriberBuffer = 16

// Bridge is a WebSocket-backed bridge.Bridge. Create one with Dial.
type Bridge struct {
	conn   *websocket.Conn
	logger logging.Logger

	nextID atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan *rpc.Response
	subs    []chan bridge.TransactionUpdate
	closed  bool

	done chan struct{}

	stateMu   sync.RWMutex
	connected bool
	address   string
	network   string
	host      bridge.HostInfo
	caps      bridge.CapabilitySet
}

var _ bridge.Bridge = (*Bridge)(nil)

type dialOptions struct {
	logger           logging.Logger
	handshakeTimeout time.Duration
}

// Option customizes Dial.
type Option func(*dialOptions)

// WithLogger sets the logger for connection diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(o *dialOptions) {
		o.logger = logger
	}
}

// WithHandshakeTimeout bounds the initial handshake call.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(o *dialOptions) {
		if timeout > 0 {
			o.handshakeTimeout = timeout
		}
	}
}

// handshake is the host's answer to bridge.handshake: who it is, which
// optional capability groups it offers, and any session that already
// exists.
type handshake struct {
	Host         bridge.HostInfo `json:"host"`
	Capabilities []string        `json:"capabilities"`
	Connected    bool            `json:"connected,omitempty"`
	Address      string          `json:"address,omitempty"`
	Network      string          `json:"network,omitempty"`
}

// Dial connects to a host bridge endpoint and performs the handshake.
// The returned Bridge is ready for use; callers own it and must Close it.
func Dial(ctx context.Context, url string, opts ...Option) (*Bridge, error) {
	options := dialOptions{handshakeTimeout: DefaultHandshakeTimeout}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = logging.NewLogger(logging.DefaultConfig())
	}

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial bridge %s: %w", url, err)
	}

	b := &Bridge{
		conn:    conn,
		logger:  options.logger.WithComponent("wsbridge"),
		pending: make(map[uint64]chan *rpc.Response),
		done:    make(chan struct{}),
	}
	go b.readLoop()

	hsCtx, cancel := context.WithTimeout(ctx, options.handshakeTimeout)
	defer cancel()

	var hs handshake
	if err := b.call(hsCtx, "bridge.handshake", nil, &hs); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("bridge handshake: %w", err)
	}
	b.applyHandshake(hs)

	b.logger.Debug(ctx, "bridge handshake complete",
		"host", hs.Host.Name, "capabilities", len(hs.Capabilities))
	return b, nil
}

func (b *Bridge) applyHandshake(hs handshake) {
	caps := make([]bridge.Capability, 0, len(hs.Capabilities))
	for _, name := range hs.Capabilities {
		caps = append(caps, bridge.Capability(name))
	}

	b.stateMu.Lock()
	b.host = hs.Host
	b.caps = bridge.NewCapabilitySet(caps...)
	b.connected = hs.Connected
	b.address = hs.Address
	b.network = hs.Network
	b.stateMu.Unlock()
}

// Close tears the connection down. In-flight calls fail with a
// disconnected error and subscriber channels close.
func (b *Bridge) Close() error {
	err := b.conn.Close(websocket.StatusNormalClosure, "")
	b.shutdown()
	return err
}

// shutdown marks the bridge closed and releases everything waiting on
// it. Called from Close and from the read loop on connection errors;
// safe to call more than once.
func (b *Bridge) shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.done)
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	b.stateMu.Lock()
	b.connected = false
	b.stateMu.Unlock()

	for _, ch := range subs {
		close(ch)
	}
}

// readLoop owns conn reads: replies go to the pending call, notifications
// go to subscribers. Exits on the first read error.
func (b *Bridge) readLoop() {
	ctx := context.Background()
	for {
		_, data, err := b.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				b.logger.Debug(ctx, "bridge connection closed", "reason", err.Error())
			}
			b.shutdown()
			return
		}

		resp, err := rpc.DecodeResponse(data)
		if err != nil {
			b.logger.Warn(ctx, err, "dropping malformed bridge frame")
			continue
		}

		if resp.Notification() {
			b.dispatchNotification(ctx, resp)
			continue
		}

		b.mu.Lock()
		ch, ok := b.pending[resp.ID]
		if ok {
			delete(b.pending, resp.ID)
		}
		b.mu.Unlock()

		if !ok {
			b.logger.Debug(ctx, "dropping reply with no pending call", "id", resp.ID)
			continue
		}
		ch <- resp
	}
}

func (b *Bridge) dispatchNotification(ctx context.Context, resp *rpc.Response) {
	switch resp.Method {
	case "transaction.update":
		var update bridge.TransactionUpdate
		if err := json.Unmarshal(resp.Params, &update); err != nil {
			b.logger.Warn(ctx, err, "dropping malformed transaction update")
			return
		}

		b.mu.Lock()
		subs := make([]chan bridge.TransactionUpdate, len(b.subs))
		copy(subs, b.subs)
		b.mu.Unlock()

		for _, ch := range subs {
			select {
			case ch <- update:
			default:
				// slow subscriber, drop rather than stall the read loop
			}
		}
	default:
		b.logger.Debug(ctx, "ignoring unknown notification", "method", resp.Method)
	}
}

// call performs one request/reply round trip. A host error object comes
// back as *bridge.RemoteError; transport failures and context expiry come
// back as ordinary errors.
func (b *Bridge) call(ctx context.Context, method string, params, result interface{}) error {
	id := b.nextID.Add(1)
	data, err := rpc.EncodeRequest(id, method, params)
	if err != nil {
		return err
	}

	ch := make(chan *rpc.Response, 1)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return &bridge.RemoteError{Code: bridge.CodeDisconnected, Message: "bridge connection is closed"}
	}
	b.pending[id] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()
	}()

	if err := b.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("write %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return &bridge.RemoteError{Code: bridge.CodeDisconnected, Message: "bridge connection is closed"}
	case resp := <-ch:
		if resp.Error != nil {
			return &bridge.RemoteError{Code: resp.Error.Code, Message: resp.Error.Message}
		}
		if result != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("decode %s result: %w", method, err)
			}
		}
		return nil
	}
}

// Connected reports the cached session state.
func (b *Bridge) Connected() bool {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.connected
}

// Address returns the cached account address.
func (b *Bridge) Address() string {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.address
}

// Network returns the cached network name.
func (b *Bridge) Network() string {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.network
}

// Installed is always true for a dialed connection.
func (b *Bridge) Installed() bool {
	return true
}

// Host returns the host identity from the handshake.
func (b *Bridge) Host() bridge.HostInfo {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.host
}

// Capabilities returns the negotiated capability set.
func (b *Bridge) Capabilities() bridge.CapabilitySet {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.caps
}

func (b *Bridge) hasCapability(c bridge.Capability) bool {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.caps.Has(c)
}

// Ready asks the host whether it accepts wallet operations yet.
func (b *Bridge) Ready(ctx context.Context) (bool, error) {
	var ready bool
	if err := b.call(ctx, "bridge.ready", nil, &ready); err != nil {
		return false, err
	}
	return ready, nil
}
