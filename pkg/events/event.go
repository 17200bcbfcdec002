package events

import "time"

// Event is the envelope every workflow event implements before it goes out
// on the wire. The event type doubles as the NATS subject suffix.
type Event interface {
	// EventType returns the event code, e.g. "LEAD_CANCEL_APPROVED".
	EventType() string

	// Payload returns the event data as published.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain value implementation used by the decision
// publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
