package rest

import "time"

// DefaultDuration is the rest length between rounds.
const DefaultDuration = 120 * time.Second

// Countdown is a whole-second rest countdown, independent of the breathing
// cycle.
type Countdown struct {
	Total time.Duration
}

// NewCountdown returns a countdown of total length. Non-positive totals
// complete immediately.
func NewCountdown(total time.Duration) Countdown {
	if total < 0 {
		total = 0
	}
	return Countdown{Total: total}
}

// Remaining returns the whole seconds left after elapsed, never negative.
func (c Countdown) Remaining(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	left := int(c.Total/time.Second) - int(elapsed/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// Done reports whether the countdown has reached zero.
func (c Countdown) Done(elapsed time.Duration) bool {
	return c.Remaining(elapsed) == 0
}

// Status is a snapshot of a running rest.
type Status struct {
	Remaining int     `json:"remaining_seconds"`
	Phase     Phase   `json:"phase"`
	Ratio     float64 `json:"ratio"`
}

// StatusAt combines the countdown and breathing phase for elapsed.
func (c Countdown) StatusAt(elapsed time.Duration) Status {
	phase, r := PhaseAt(elapsed)
	return Status{
		Remaining: c.Remaining(elapsed),
		Phase:     phase,
		Ratio:     r,
	}
}
