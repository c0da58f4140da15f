package security

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MoveIndustries/mini-app-sdk/logging"
)

// EventKind classifies security events.
type EventKind string

const (
	EventRateLimit          EventKind = "rate_limit"
	EventInvalidOrigin      EventKind = "invalid_origin"
	EventInvalidTransaction EventKind = "invalid_transaction"
	EventReplayAttack       EventKind = "replay_attack"
	EventSuspiciousActivity EventKind = "suspicious_activity"
)

// Event records a guard decision worth surfacing. Emission is
// best-effort observability: an event never changes the outcome of the
// operation that produced it.
type Event struct {
	ID        string                 `json:"id"`
	Kind      EventKind              `json:"kind"`
	Details   string                 `json:"details"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewEvent creates an event with a fresh UUID and the current time.
func NewEvent(kind EventKind, details string, metadata map[string]interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Kind:      kind,
		Details:   details,
		Metadata:  metadata,
		Timestamp: time.Now(),
	}
}

// EventSink receives security events. Implementations must not block;
// the mediator calls Record inline on the guarded path. Forwarding to
// remote monitoring belongs behind this interface.
type EventSink interface {
	Record(ctx context.Context, event Event)
}

// LogSink writes security events to a structured logger.
type LogSink struct {
	logger logging.Logger
}

// NewLogSink creates a sink writing through the given logger.
func NewLogSink(logger logging.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Record implements EventSink.
func (s *LogSink) Record(ctx context.Context, event Event) {
	details := map[string]interface{}{
		"event_id": event.ID,
		"details":  event.Details,
	}
	for k, v := range event.Metadata {
		details[k] = v
	}

	logging.LogSecurityEvent(s.logger, ctx, string(event.Kind), details)
}
