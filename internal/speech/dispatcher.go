package speech

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/flashloop/internal/domain"
)

// Dispatcher plays utterance sequences on a background worker, latest
// request wins.
type Dispatcher struct {
	speaker Speaker
	koDelay time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	pending []Utterance
	cancel  context.CancelFunc
	stopped bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewDispatcher starts a dispatcher. koDelay is the pause inserted before a
// Korean utterance that follows another utterance.
func NewDispatcher(speaker Speaker, koDelay time.Duration, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		speaker: speaker,
		koDelay: koDelay,
		logger:  logger.With(slog.String("component", "speech_dispatcher")),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Say cancels the sequence in flight and queues utts in place of anything
// not yet started. It never blocks on playback.
func (d *Dispatcher) Say(utts ...Utterance) {
	if len(utts) == 0 {
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = append([]Utterance(nil), utts...)
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// SayCard reads a card in English then Korean.
func (d *Dispatcher) SayCard(c domain.Card) {
	d.Say(CardUtterances(c)...)
}

// Stop cancels playback and waits for the worker to exit. It is safe to
// call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.stopped = true
	d.pending = nil
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()

	close(d.quit)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for {
		select {
		case <-d.quit:
			return
		case <-d.wake:
			d.playPending()
		}
	}
}

// playPending takes the queued sequence and plays it. Taking the sequence
// and publishing its cancel func happen under one lock so a concurrent Say
// either replaces the sequence or cancels it.
func (d *Dispatcher) playPending() {
	d.mu.Lock()
	utts := d.pending
	d.pending = nil
	if len(utts) == 0 || d.stopped {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	defer func() {
		cancel()
		d.mu.Lock()
		d.cancel = nil
		d.mu.Unlock()
	}()

	for i, u := range utts {
		if i > 0 && u.Lang == LangKO && d.koDelay > 0 {
			t := time.NewTimer(d.koDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
		if err := d.speaker.Speak(ctx, u); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			d.logger.Warn("utterance failed",
				slog.String("lang", string(u.Lang)),
				slog.String("error", err.Error()))
		}
		if ctx.Err() != nil {
			return
		}
	}
}
