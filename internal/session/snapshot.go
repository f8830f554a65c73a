package session

import (
	"github.com/google/uuid"
	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/domain/rest"
)

// Snapshot is a read-only view of a controller for presentation.
type Snapshot struct {
	ID        uuid.UUID       `json:"id"`
	State     State           `json:"state"`
	Corpus    string          `json:"corpus,omitempty"`
	Progress  Progress        `json:"progress"`
	Card      *domain.Card    `json:"card,omitempty"`
	Auto      bool            `json:"auto"`
	SeenCount int             `json:"seen_count"`
	Rest      *rest.Status    `json:"rest,omitempty"`
	Summary   *SessionSummary `json:"summary,omitempty"`
}

// Snapshot captures the controller's current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		ID:        c.id,
		State:     c.state,
		Progress:  c.Progress(),
		Auto:      c.auto,
		SeenCount: c.seen.Len(),
	}
	if c.state != Idle {
		s.Corpus = c.opts.Key().String()
	}
	if card, ok := c.CurrentCard(); ok {
		s.Card = &card
	}
	if st, ok := c.RestStatus(); ok {
		s.Rest = &st
	}
	if sum, ok := c.Summary(); ok {
		s.Summary = &sum
	}
	return s
}
