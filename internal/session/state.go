package session

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an input is not accepted in the
// controller's current state. The state is left untouched.
var ErrInvalidTransition = errors.New("invalid session transition")

// State is the controller's position in the session lifecycle.
type State int

const (
	Idle State = iota
	Configuring
	RoundActive
	Resting
	Summary
	// Halted ends a manual single-round session.
	Halted
)

// String returns the snake_case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configuring:
		return "configuring"
	case RoundActive:
		return "round_active"
	case Resting:
		return "resting"
	case Summary:
		return "summary"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Input is a discrete event delivered to the controller.
type Input int

const (
	InputConfigure Input = iota
	InputStart
	InputAdvance
	InputBack
	InputToggleAuto
	InputSkipRest
	InputRestElapsed
	InputExit
)

func (in Input) String() string {
	switch in {
	case InputConfigure:
		return "configure"
	case InputStart:
		return "start"
	case InputAdvance:
		return "advance"
	case InputBack:
		return "back"
	case InputToggleAuto:
		return "toggle_auto"
	case InputSkipRest:
		return "skip_rest"
	case InputRestElapsed:
		return "rest_elapsed"
	case InputExit:
		return "exit"
	default:
		return "unknown"
	}
}

// accepts lists the inputs each state handles. Inputs missing here are
// rejected with ErrInvalidTransition.
var accepts = map[State][]Input{
	Idle:        {InputConfigure},
	Configuring: {InputConfigure, InputStart, InputExit},
	RoundActive: {InputAdvance, InputBack, InputToggleAuto, InputExit},
	Resting:     {InputToggleAuto, InputSkipRest, InputRestElapsed, InputExit},
	Summary:     {InputConfigure, InputExit},
	Halted:      {InputConfigure, InputExit},
}

// Accepts reports whether state handles input.
func Accepts(state State, input Input) bool {
	for _, in := range accepts[state] {
		if in == input {
			return true
		}
	}
	return false
}

func guard(state State, input Input) error {
	if Accepts(state, input) {
		return nil
	}
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, input, state)
}
