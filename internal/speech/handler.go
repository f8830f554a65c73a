package speech

import (
	"context"
	"fmt"

	"github.com/phrazzld/flashloop/internal/events"
)

// CardShownHandler reads every shown card aloud through d.
type CardShownHandler struct {
	d *Dispatcher
}

var _ events.EventHandler = (*CardShownHandler)(nil)

// NewCardShownHandler returns an event handler bound to d.
func NewCardShownHandler(d *Dispatcher) *CardShownHandler {
	return &CardShownHandler{d: d}
}

// HandleEvent implements events.EventHandler. Other event types are ignored.
func (h *CardShownHandler) HandleEvent(_ context.Context, event *events.Event) error {
	if event.Type != events.TypeCardShown {
		return nil
	}
	var payload events.CardShown
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("decode card.shown payload: %w", err)
	}
	h.d.SayCard(payload.Card)
	return nil
}
