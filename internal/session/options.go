package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/domain/rest"
)

// Rounds is the number of rounds in an automatic session.
const Rounds = 3

// Defaults from the trainer.
const (
	DefaultPage         = 30
	DefaultAutoInterval = 1200 * time.Millisecond
)

// ErrInvalidOptions is returned by Configure for unusable options.
var ErrInvalidOptions = errors.New("invalid session options")

// Options configures one session.
type Options struct {
	Domain   string `json:"domain"`
	Category string `json:"category,omitempty"`
	Level    int    `json:"level"`
	Page     int    `json:"page"`
	// Seed fixes every round's draw. Nil derives a fresh seed per round
	// from the clock.
	Seed           *int64 `json:"seed,omitempty"`
	ShuffleRound1  bool   `json:"shuffle_round1"`
	FillFromMaster bool   `json:"fill_from_master"`
	// SessionMode runs three rounds with rests. Otherwise the controller
	// halts after round one.
	SessionMode bool `json:"session_mode"`
}

// Key returns the corpus partition the options address.
func (o Options) Key() domain.CorpusKey {
	k := domain.CorpusKey{Domain: strings.ToLower(strings.TrimSpace(o.Domain))}
	if k.IsEnglish() {
		k.Category = strings.ToLower(strings.TrimSpace(o.Category))
		return k
	}
	k.Level = o.Level
	return k
}

// Validate checks the options.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Domain) == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidOptions)
	}
	if o.Page < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, domain.ErrInvalidPageSize)
	}
	if o.Level < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, domain.ErrCardLevelInvalid)
	}
	return nil
}

// ParseSeed parses a user-supplied seed. Empty or non-numeric input yields
// nil, which the controller replaces with a time-derived seed.
func ParseSeed(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// TimeSeed derives a seed from t the way the trainer always has: the low 32
// bits of its nanosecond timestamp.
func TimeSeed(t time.Time) int64 {
	return t.UnixNano() & 0xFFFFFFFF
}

// Settings holds pacing shared by every session of a process.
type Settings struct {
	RestDuration time.Duration
	AutoInterval time.Duration
}

// DefaultSettings returns the trainer's pacing.
func DefaultSettings() Settings {
	return Settings{
		RestDuration: rest.DefaultDuration,
		AutoInterval: DefaultAutoInterval,
	}
}
