package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateNames(t *testing.T) {
	t.Parallel()

	names := map[State]string{
		Idle:        "idle",
		Configuring: "configuring",
		RoundActive: "round_active",
		Resting:     "resting",
		Summary:     "summary",
		Halted:      "halted",
		State(42):   "unknown",
	}
	for s, want := range names {
		assert.Equal(t, want, s.String())
	}

	b, err := json.Marshal(map[string]State{"state": Resting})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"resting"}`, string(b))
}

func TestAccepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		input Input
		want  bool
	}{
		{Idle, InputConfigure, true},
		{Idle, InputAdvance, false},
		{Idle, InputExit, false},
		{Configuring, InputStart, true},
		{Configuring, InputAdvance, false},
		{RoundActive, InputAdvance, true},
		{RoundActive, InputBack, true},
		{RoundActive, InputSkipRest, false},
		{RoundActive, InputConfigure, false},
		{Resting, InputSkipRest, true},
		{Resting, InputRestElapsed, true},
		{Resting, InputAdvance, false},
		{Resting, InputBack, false},
		{Summary, InputConfigure, true},
		{Summary, InputAdvance, false},
		{Halted, InputExit, true},
		{Halted, InputSkipRest, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Accepts(tt.state, tt.input), "%s/%s", tt.state, tt.input)
	}

	for _, s := range []State{Configuring, RoundActive, Resting, Summary, Halted} {
		assert.True(t, Accepts(s, InputExit), "exit from %s", s)
	}
}

func TestGuardMessage(t *testing.T) {
	t.Parallel()

	err := guard(Resting, InputBack)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "back while resting")
	assert.NoError(t, guard(Resting, InputSkipRest))
}
