// Package bridge defines the host wallet bridge abstraction: the payload
// and result types that cross it, the Bridge interface every transport
// implements, and the capability groups a host may optionally expose.
//
// Transports live in subpackages (wsbridge ships a WebSocket JSON-RPC
// client); tests and embedders may provide their own implementations.
package bridge

import "context"

// Bridge is the host wallet surface a transport exposes to the SDK.
//
// State accessors (Connected, Address, Network, Installed, Host,
// Capabilities) are synchronous reads of locally cached state and must be
// safe for concurrent use. Everything else crosses to the host and takes
// a context.
type Bridge interface {
	// Connected reports whether a wallet session is established.
	Connected() bool
	// Address returns the connected account address, or "" when not
	// connected.
	Address() string
	// Network returns the chain network name reported by the host.
	Network() string
	// Installed reports whether a host bridge is present at all.
	Installed() bool
	// Host describes the host wallet as reported during the handshake.
	Host() HostInfo
	// Capabilities returns the negotiated optional capability set.
	Capabilities() CapabilitySet

	// Ready reports whether the host has finished initializing and will
	// accept wallet operations.
	Ready(ctx context.Context) (bool, error)

	Connect(ctx context.Context) (*Account, error)
	Account(ctx context.Context) (*Account, error)
	Balance(ctx context.Context) (string, error)
	LaunchContext(ctx context.Context) (*LaunchContext, error)
	Theme(ctx context.Context) (*Theme, error)
	ScanQRCode(ctx context.Context) (string, error)

	SendTransaction(ctx context.Context, tx *TransactionPayload) (*TransactionResult, error)
	SendMultiAgentTransaction(ctx context.Context, tx *MultiAgentTransaction) (*TransactionResult, error)
	SendFeePayerTransaction(ctx context.Context, tx *FeePayerTransaction) (*TransactionResult, error)
	SendBatchTransactions(ctx context.Context, txs []*TransactionPayload) ([]*TransactionResult, error)
	SendScriptTransaction(ctx context.Context, tx *ScriptTransaction) (*TransactionResult, error)
	View(ctx context.Context, call *ViewPayload) ([]interface{}, error)
	WaitForTransaction(ctx context.Context, hash string) (*TransactionStatus, error)
	SubscribeTransactionUpdates(ctx context.Context) (<-chan TransactionUpdate, error)

	SignMessage(ctx context.Context, msg *SignMessagePayload) (*SignMessageResult, error)

	// Optional capability groups. Each accessor returns the group
	// implementation and whether the host supports it; callers must not
	// use the ops value when ok is false.
	Device() (DeviceOps, bool)
	Storage() (StorageOps, bool)
	CloudStorage() (StorageOps, bool)
	Camera() (CameraOps, bool)
	Location() (LocationOps, bool)
	Biometric() (BiometricOps, bool)
	Clipboard() (ClipboardOps, bool)
	Dialogs() (DialogOps, bool)
	Buttons() (ButtonOps, bool)
	Analytics() (AnalyticsOps, bool)
}

// DeviceOps groups device interactions (capability "device").
type DeviceOps interface {
	HapticFeedback(ctx context.Context, style string) error
	Notify(ctx context.Context, message string) error
	Share(ctx context.Context, text, url string) error
	OpenURL(ctx context.Context, url string) error
	Close(ctx context.Context) error
}

// StorageOps groups key-value storage scoped to the mini app. The same
// interface serves device-local storage (capability "storage") and
// host-synced storage (capability "cloud-storage").
type StorageOps interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

// CameraOps groups camera access (capability "camera").
type CameraOps interface {
	// CapturePhoto opens the host camera and returns the captured image
	// as a data URL.
	CapturePhoto(ctx context.Context) (string, error)
}

// LocationOps groups device location access (capability "location").
type LocationOps interface {
	CurrentLocation(ctx context.Context) (*Location, error)
}

// BiometricOps groups biometric authentication (capability "biometric").
type BiometricOps interface {
	Authenticate(ctx context.Context, reason string) (bool, error)
}

// ClipboardOps groups clipboard access (capability "clipboard").
type ClipboardOps interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// DialogOps groups host-rendered dialogs (capability "dialogs").
type DialogOps interface {
	Alert(ctx context.Context, message string) error
	Confirm(ctx context.Context, message string) (bool, error)
	// Popup shows a dialog with custom buttons and returns the id of the
	// button pressed.
	Popup(ctx context.Context, title, message string, buttons []ButtonOptions) (string, error)
}

// ButtonOps groups the host chrome buttons (capability "buttons").
type ButtonOps interface {
	SetPrimaryButton(ctx context.Context, opts *ButtonOptions) error
	SetSecondaryButton(ctx context.Context, opts *ButtonOptions) error
	ShowBackButton(ctx context.Context, visible bool) error
}

// AnalyticsOps groups host analytics forwarding (capability "analytics").
type AnalyticsOps interface {
	Track(ctx context.Context, event string, props map[string]interface{}) error
	Identify(ctx context.Context, userID string, traits map[string]interface{}) error
	TrackScreen(ctx context.Context, name string) error
	SetUserProperties(ctx context.Context, props map[string]interface{}) error
	Reset(ctx context.Context) error
	Enabled(ctx context.Context) (bool, error)
	OptOut(ctx context.Context) error
	OptIn(ctx context.Context) error
}
