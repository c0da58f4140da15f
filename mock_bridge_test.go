package miniapp

import (
	"context"
	"sync"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

// mockBridge provides a scriptable bridge.Bridge for mediator tests.
// Every delegated call is recorded in calls so tests can assert that
// guards stopped (or allowed) delegation.
type mockBridge struct {
	mu    sync.Mutex
	calls []string

	installed  bool
	connected  bool
	address    string
	network    string
	host       bridge.HostInfo
	caps       bridge.CapabilitySet
	ready      bool
	readyErr   error
	readyAfter int // Ready calls before reporting true

	err             error // returned by every delegated call when set
	lastSignPayload *bridge.SignMessagePayload
	lastBatch       []*bridge.TransactionPayload

	deviceOps bridge.DeviceOps
}

var _ bridge.Bridge = (*mockBridge)(nil)

func newMockBridge() *mockBridge {
	return &mockBridge{
		installed: true,
		connected: true,
		address:   "0xabc",
		network:   "mainnet",
		ready:     true,
	}
}

func (m *mockBridge) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockBridge) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockBridge) Connected() bool                    { return m.connected }
func (m *mockBridge) Address() string                    { return m.address }
func (m *mockBridge) Network() string                    { return m.network }
func (m *mockBridge) Installed() bool                    { return m.installed }
func (m *mockBridge) Host() bridge.HostInfo              { return m.host }
func (m *mockBridge) Capabilities() bridge.CapabilitySet { return m.caps }

func (m *mockBridge) Ready(ctx context.Context) (bool, error) {
	m.record("Ready")
	if m.readyErr != nil {
		return false, m.readyErr
	}
	if m.readyAfter > 0 {
		m.readyAfter--
		return false, nil
	}
	return m.ready, nil
}

func (m *mockBridge) Connect(ctx context.Context) (*bridge.Account, error) {
	m.record("Connect")
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.Account{Address: m.address}, nil
}

func (m *mockBridge) Account(ctx context.Context) (*bridge.Account, error) {
	m.record("Account")
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.Account{Address: m.address}, nil
}

func (m *mockBridge) Balance(ctx context.Context) (string, error) {
	m.record("Balance")
	return "100000000", m.err
}

func (m *mockBridge) LaunchContext(ctx context.Context) (*bridge.LaunchContext, error) {
	m.record("LaunchContext")
	return &bridge.LaunchContext{Source: "test"}, m.err
}

func (m *mockBridge) Theme(ctx context.Context) (*bridge.Theme, error) {
	m.record("Theme")
	return &bridge.Theme{Mode: "dark"}, m.err
}

func (m *mockBridge) ScanQRCode(ctx context.Context) (string, error) {
	m.record("ScanQRCode")
	return "0xdef", m.err
}

func (m *mockBridge) SendTransaction(ctx context.Context, tx *bridge.TransactionPayload) (*bridge.TransactionResult, error) {
	m.record("SendTransaction")
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.TransactionResult{Hash: "0x111"}, nil
}

func (m *mockBridge) SendMultiAgentTransaction(ctx context.Context, tx *bridge.MultiAgentTransaction) (*bridge.TransactionResult, error) {
	m.record("SendMultiAgentTransaction")
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.TransactionResult{Hash: "0x222"}, nil
}

func (m *mockBridge) SendFeePayerTransaction(ctx context.Context, tx *bridge.FeePayerTransaction) (*bridge.TransactionResult, error) {
	m.record("SendFeePayerTransaction")
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.TransactionResult{Hash: "0x333"}, nil
}

func (m *mockBridge) SendBatchTransactions(ctx context.Context, txs []*bridge.TransactionPayload) ([]*bridge.TransactionResult, error) {
	m.record("SendBatchTransactions")
	m.lastBatch = txs
	if m.err != nil {
		return nil, m.err
	}
	results := make([]*bridge.TransactionResult, len(txs))
	for i := range txs {
		results[i] = &bridge.TransactionResult{Hash: "0x444"}
	}
	return results, nil
}

func (m *mockBridge) SendScriptTransaction(ctx context.Context, tx *bridge.ScriptTransaction) (*bridge.TransactionResult, error) {
	m.record("SendScriptTransaction")
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.TransactionResult{Hash: "0x555"}, nil
}

func (m *mockBridge) View(ctx context.Context, call *bridge.ViewPayload) ([]interface{}, error) {
	m.record("View")
	if m.err != nil {
		return nil, m.err
	}
	return []interface{}{"42"}, nil
}

func (m *mockBridge) WaitForTransaction(ctx context.Context, hash string) (*bridge.TransactionStatus, error) {
	m.record("WaitForTransaction")
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.TransactionStatus{Hash: hash, Success: true}, nil
}

func (m *mockBridge) SubscribeTransactionUpdates(ctx context.Context) (<-chan bridge.TransactionUpdate, error) {
	m.record("SubscribeTransactionUpdates")
	ch := make(chan bridge.TransactionUpdate)
	close(ch)
	return ch, m.err
}

func (m *mockBridge) SignMessage(ctx context.Context, msg *bridge.SignMessagePayload) (*bridge.SignMessageResult, error) {
	m.record("SignMessage")
	m.lastSignPayload = msg
	if m.err != nil {
		return nil, m.err
	}
	return &bridge.SignMessageResult{
		Signature:   "0xsig",
		FullMessage: msg.Message,
		Nonce:       msg.Nonce,
		Address:     m.address,
	}, nil
}

func (m *mockBridge) Device() (bridge.DeviceOps, bool) {
	return m.deviceOps, m.deviceOps != nil
}
func (m *mockBridge) Storage() (bridge.StorageOps, bool)      { return nil, false }
func (m *mockBridge) CloudStorage() (bridge.StorageOps, bool) { return nil, false }
func (m *mockBridge) Camera() (bridge.CameraOps, bool)        { return nil, false }
func (m *mockBridge) Location() (bridge.LocationOps, bool)    { return nil, false }
func (m *mockBridge) Biometric() (bridge.BiometricOps, bool)  { return nil, false }
func (m *mockBridge) Clipboard() (bridge.ClipboardOps, bool)  { return nil, false }
func (m *mockBridge) Dialogs() (bridge.DialogOps, bool)       { return nil, false }
func (m *mockBridge) Buttons() (bridge.ButtonOps, bool)       { return nil, false }
func (m *mockBridge) Analytics() (bridge.AnalyticsOps, bool)  { return nil, false }

// mockDeviceOps satisfies bridge.DeviceOps for capability tests.
type mockDeviceOps struct {
	hapticCalls int
}

func (d *mockDeviceOps) HapticFeedback(ctx context.Context, style string) error {
	d.hapticCalls++
	return nil
}
func (d *mockDeviceOps) Notify(ctx context.Context, message string) error  { return nil }
func (d *mockDeviceOps) Share(ctx context.Context, text, url string) error { return nil }
func (d *mockDeviceOps) OpenURL(ctx context.Context, url string) error     { return nil }
func (d *mockDeviceOps) Close(ctx context.Context) error                   { return nil }

// recordingSink captures security events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []security.Event
}

func (s *recordingSink) Record(ctx context.Context, event security.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) kinds() []security.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]security.EventKind, len(s.events))
	for i, ev := range s.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func (s *recordingSink) last() security.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return security.Event{}
	}
	return s.events[len(s.events)-1]
}
