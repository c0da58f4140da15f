package miniapp

import (
	"context"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

// SignMessage asks the host wallet to sign a message.
//
// A caller-supplied nonce must pass the replay registry; without one a
// fresh nonce is generated and attached. The message body is sanitized
// before it leaves the mediator. The caller's payload is never mutated:
// the bridge receives a copy carrying the sanitized message and the
// final nonce.
func (c *Client) SignMessage(ctx context.Context, msg *bridge.SignMessagePayload) (*bridge.SignMessageResult, error) {
	if err := c.allow(ctx, opSignMessage); err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, security.NewInvalidInputError(security.ErrCodeInvalidMessage, "Sign message payload is required")
	}

	nonce := msg.Nonce
	if nonce == "" {
		nonce = c.nonces.Generate()
	} else if !c.nonces.Validate(nonce) {
		err := security.NewReplayError("Message nonce was already used or is expired")
		c.emit(ctx, security.EventReplayAttack, err.Message, map[string]interface{}{
			"operation": opSignMessage,
			"nonce":     nonce,
		})
		return nil, err
	}

	sanitized := security.SanitizeMessage(msg.Message)
	if sanitized != msg.Message {
		c.emit(ctx, security.EventSuspiciousActivity, "Message contained control characters or exceeded the length cap", map[string]interface{}{
			"operation":        opSignMessage,
			"original_length":  len(msg.Message),
			"sanitized_length": len(sanitized),
		})
	}

	outgoing := &bridge.SignMessagePayload{
		Message: sanitized,
		Nonce:   nonce,
	}
	return c.bridge.SignMessage(ctx, outgoing)
}
