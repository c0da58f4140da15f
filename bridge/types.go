package bridge

// Account describes the wallet account exposed by the host.
type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key,omitempty"`
}

// TransactionMetadata carries optional presentation and execution hints
// attached to a transaction payload.
type TransactionMetadata struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	UseFeePayer  bool   `json:"use_fee_payer,omitempty"`
	FeePayerURL  string `json:"fee_payer_url,omitempty"`
	MaxGasAmount uint64 `json:"max_gas_amount,omitempty"`
}

// TransactionPayload is an entry-function call request.
//
// TypeArguments and Arguments distinguish absent (nil) from present but
// empty: a payload decoded from JSON without an "arguments" key keeps a
// nil slice, which validation treats as missing.
type TransactionPayload struct {
	Function      string               `json:"function"`
	TypeArguments []string             `json:"type_arguments"`
	Arguments     []interface{}        `json:"arguments"`
	Metadata      *TransactionMetadata `json:"metadata,omitempty"`
}

// MultiAgentTransaction is a transaction that requires additional signers
// beyond the primary account.
type MultiAgentTransaction struct {
	Payload          TransactionPayload `json:"payload"`
	SecondarySigners []string           `json:"secondary_signers"`
}

// FeePayerTransaction is a transaction whose gas is paid by a sponsor
// account.
type FeePayerTransaction struct {
	Payload  TransactionPayload `json:"payload"`
	FeePayer string             `json:"fee_payer"`
}

// ScriptTransaction submits compiled script bytecode instead of an entry
// function call.
type ScriptTransaction struct {
	Bytecode      string        `json:"bytecode"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

// ViewPayload is a read-only function call evaluated by the host without
// submitting a transaction.
type ViewPayload struct {
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

// SignMessagePayload asks the host to sign an arbitrary message.
type SignMessagePayload struct {
	Message string `json:"message"`
	Nonce   string `json:"nonce,omitempty"`
}

// SignMessageResult is the host's response to a sign-message request.
// FullMessage is the exact text the wallet signed, including any host
// framing around the application message.
type SignMessageResult struct {
	Signature   string `json:"signature"`
	FullMessage string `json:"full_message,omitempty"`
	Nonce       string `json:"nonce,omitempty"`
	Address     string `json:"address,omitempty"`
}

// TransactionResult identifies a submitted transaction.
type TransactionResult struct {
	Hash string `json:"hash"`
}

// TransactionStatus is the terminal state of a submitted transaction.
type TransactionStatus struct {
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status,omitempty"`
	GasUsed  uint64 `json:"gas_used,omitempty"`
}

// TransactionUpdate is a host push notification about a pending
// transaction.
type TransactionUpdate struct {
	Hash   string `json:"hash"`
	Status string `json:"status"`
}

// Theme describes the host UI theme so embedded apps can match it.
type Theme struct {
	Mode        string `json:"mode"`
	AccentColor string `json:"accent_color,omitempty"`
}

// LaunchContext describes how the mini app was opened.
type LaunchContext struct {
	Source     string `json:"source,omitempty"`
	StartParam string `json:"start_param,omitempty"`
	Referrer   string `json:"referrer,omitempty"`
}

// HostInfo identifies the host wallet reported during the handshake.
// Origin is the host's web origin and feeds the allowed-origin check.
type HostInfo struct {
	Name     string `json:"name,omitempty"`
	Version  string `json:"version,omitempty"`
	Platform string `json:"platform,omitempty"`
	Origin   string `json:"origin,omitempty"`
}

// ButtonOptions configures a host-rendered action button.
type ButtonOptions struct {
	ID       string `json:"id,omitempty"`
	Text     string `json:"text"`
	Color    string `json:"color,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Location is a device position fix.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}
