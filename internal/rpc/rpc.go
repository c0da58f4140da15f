// Package rpc defines the JSON envelope exchanged with a host wallet
// bridge over a WebSocket. Requests carry an id, responses echo it, and
// notifications omit it.
package rpc

import (
	"encoding/json"
	"fmt"
)

// Request is an outgoing call frame.
type Request struct {
	ID     uint64      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is an incoming frame: either a reply to a Request (ID set,
// Result or Error populated) or a server-initiated notification (ID
// zero, Method and Params populated).
type Response struct {
	ID     uint64          `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// Notification reports whether the frame is a server-initiated
// notification rather than a call reply.
func (r *Response) Notification() bool {
	return r.ID == 0 && r.Method != ""
}

// Error is the wire form of a failed call.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// EncodeRequest marshals a call frame.
func EncodeRequest(id uint64, method string, params interface{}) ([]byte, error) {
	data, err := json.Marshal(Request{ID: id, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}
	return data, nil
}

// DecodeResponse unmarshals an incoming frame.
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response frame: %w", err)
	}
	return &resp, nil
}
