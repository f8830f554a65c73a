package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by a session.
const (
	TypeSessionConfigured = "session.configured"
	TypeRoundStarted      = "round.started"
	TypeCardShown         = "card.shown"
	TypeRestStarted       = "rest.started"
	TypeSessionCompleted  = "session.completed"
	TypeSessionHalted     = "session.halted"
	TypeSessionExited     = "session.exited"
)

// Event records one session transition.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// SessionID identifies the emitting session
	SessionID uuid.UUID `json:"session_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with a fresh ID. A nil payload is omitted.
func NewEvent(eventType string, sessionID uuid.UUID, at time.Time, payload any) (*Event, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		Payload:   raw,
		CreatedAt: at,
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
