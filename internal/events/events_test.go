package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	event, err := NewEvent(TypeCardShown, sessionID, at, CardShown{
		Round: 2,
		Index: 4,
		Total: 30,
		Card:  domain.Card{Keyword: "defer", Meaning: "run at return"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeCardShown, event.Type)
	assert.Equal(t, sessionID, event.SessionID)
	assert.Equal(t, at, event.CreatedAt)

	var payload CardShown
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, 2, payload.Round)
	assert.Equal(t, "defer", payload.Card.Keyword)
}

func TestNewEventWithoutPayload(t *testing.T) {
	t.Parallel()

	event, err := NewEvent(TypeSessionExited, uuid.New(), time.Now(), nil)
	require.NoError(t, err)
	assert.Nil(t, event.Payload)
}

func TestNewEventUnencodablePayload(t *testing.T) {
	t.Parallel()

	_, err := NewEvent(TypeRoundStarted, uuid.New(), time.Now(), map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *Event
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(_ context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *Event {
		event, err := NewEvent(TypeRoundStarted, uuid.New(), time.Now(), RoundStarted{Round: 1})
		require.NoError(t, err)
		return event
	}

	t.Run("no handlers", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
	})

	t.Run("fans out to all handlers", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		h1, h2 := &MockEventHandler{}, &MockEventHandler{}
		emitter.RegisterHandler(h1)
		emitter.RegisterHandler(h2)

		event := newEvent(t)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, 1, h1.HandledCount)
		assert.Equal(t, event, h2.LastEvent)
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(nil)
		failing := &MockEventHandler{HandlerError: errors.New("handler error")}
		after := &MockEventHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(after)

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		assert.EqualError(t, err, "handler error")
		assert.Equal(t, 1, after.HandledCount)
	})

	t.Run("handler func and recorder", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		rec := &Recorder{}
		var seen string
		emitter.RegisterHandler(rec)
		emitter.RegisterHandler(HandlerFunc(func(_ context.Context, e *Event) error {
			seen = e.Type
			return nil
		}))

		require.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
		assert.Equal(t, TypeRoundStarted, seen)
		assert.Equal(t, []string{TypeRoundStarted}, rec.Types())
		assert.Len(t, rec.Events(), 1)
	})
}
