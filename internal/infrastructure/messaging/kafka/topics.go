// Package kafka publishes and consumes assessment lifecycle events.  The API
// server publishes one event per completed transaction assessment; the audit
// worker consumes the stream and persists verdicts to the audit store.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// TopicTransactionAssessed carries one event per completed transaction risk
// assessment.
const TopicTransactionAssessed = "transaction.assessed"

// EventTypeTransactionAssessed identifies the assessment-completed event.
const EventTypeTransactionAssessed = "transaction.assessed.v1"

// EventEnvelope is the wire format for all events on the bus.  Payload holds
// the event-type-specific JSON document.
type EventEnvelope struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope wraps payload into an envelope with a fresh event ID.
func NewEnvelope(eventType string, payload any) (EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, errors.Wrap(err, errors.ErrCodeSerialization,
			"failed to marshal event payload")
	}
	return EventEnvelope{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// DecodeEnvelope parses an envelope off the wire.
func DecodeEnvelope(data []byte) (EventEnvelope, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return EventEnvelope{}, errors.Wrap(err, errors.ErrCodeSerialization,
			"failed to decode event envelope")
	}
	if env.Type == "" {
		return EventEnvelope{}, errors.New(errors.ErrCodeValidation, "event envelope has no type")
	}
	return env, nil
}
