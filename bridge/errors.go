package bridge

import "fmt"

// RemoteError is a failure reported by the host itself: the request
// reached the wallet and the wallet refused or failed it. The mediating
// layer passes these through to callers unchanged.
type RemoteError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bridge error %d: %s", e.Code, e.Message)
}

// Well-known host error codes. Hosts may return others.
const (
	CodeUserRejected    = 4001
	CodeUnauthorized    = 4100
	CodeMethodNotFound  = 4200
	CodeDisconnected    = 4900
	CodeInternalFailure = 5000
)
