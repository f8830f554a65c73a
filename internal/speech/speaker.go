package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/phrazzld/flashloop/internal/config"
)

// Speaker plays one utterance and returns when playback ends or ctx is
// cancelled.
type Speaker interface {
	Speak(ctx context.Context, u Utterance) error
}

// CommandSpeaker runs an external text-to-speech command per utterance. The
// text is passed as the last argument after the per-language arguments.
// Cancelling ctx kills the process.
type CommandSpeaker struct {
	Command string
	ArgsEN  []string
	ArgsKO  []string
}

// NewCommandSpeaker builds a CommandSpeaker from configuration.
func NewCommandSpeaker(cfg config.SpeechConfig) *CommandSpeaker {
	return &CommandSpeaker{
		Command: cfg.Command,
		ArgsEN:  cfg.ArgsEN,
		ArgsKO:  cfg.ArgsKO,
	}
}

// Speak implements Speaker.
func (s *CommandSpeaker) Speak(ctx context.Context, u Utterance) error {
	base := s.ArgsEN
	if u.Lang == LangKO {
		base = s.ArgsKO
	}
	args := make([]string, 0, len(base)+1)
	args = append(args, base...)
	args = append(args, u.Text)

	cmd := exec.CommandContext(ctx, s.Command, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speech command failed: %w", err)
	}
	return nil
}

// LogSpeaker only logs, at debug level, what would be spoken.
type LogSpeaker struct {
	Logger *slog.Logger
}

// Speak implements Speaker.
func (s LogSpeaker) Speak(ctx context.Context, u Utterance) error {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	l.DebugContext(ctx, "speak", slog.String("lang", string(u.Lang)), slog.String("text", u.Text))
	return ctx.Err()
}
