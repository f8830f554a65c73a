// Package rest implements the timed rest between rounds: a whole-second
// countdown and the breathing phase shown while it runs. Both are pure
// functions of the time elapsed since the rest began.
package rest

import (
	"math"
	"time"
)

// Phase is one step of the breathing cycle.
type Phase int

const (
	// Inhale is the 4s expanding step.
	Inhale Phase = iota
	// Hold is the 4s pause at full breath.
	Hold
	// Exhale is the 6s contracting step.
	Exhale
)

// Phase durations.
const (
	InhaleDuration = 4 * time.Second
	HoldDuration   = 4 * time.Second
	ExhaleDuration = 6 * time.Second

	// CycleDuration is the length of one full breath.
	CycleDuration = InhaleDuration + HoldDuration + ExhaleDuration
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Inhale:
		return "inhale"
	case Hold:
		return "hold"
	case Exhale:
		return "exhale"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PhaseAt returns the breathing phase for the time elapsed since the rest
// began, with a progress ratio in [0,1] for animation: it grows during
// Inhale, stays at 1 during Hold and shrinks during Exhale. Negative elapsed
// time is treated as zero.
func PhaseAt(elapsed time.Duration) (Phase, float64) {
	if elapsed < 0 {
		elapsed = 0
	}
	t := elapsed % CycleDuration

	if t < InhaleDuration {
		return Inhale, ratio(t, InhaleDuration)
	}
	t -= InhaleDuration
	if t < HoldDuration {
		return Hold, 1
	}
	t -= HoldDuration
	return Exhale, 1 - ratio(t, ExhaleDuration)
}

func ratio(t, span time.Duration) float64 {
	r := float64(t) / float64(span)
	return math.Max(0, math.Min(1, r))
}
