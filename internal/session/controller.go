package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/domain/rest"
	"github.com/phrazzld/flashloop/internal/domain/selection"
	"github.com/phrazzld/flashloop/internal/events"
	"github.com/phrazzld/flashloop/internal/store"
)

// ErrMissingDependency is returned by NewController when a required
// dependency is nil.
var ErrMissingDependency = errors.New("missing session dependency")

// Deps are the collaborators of a Controller. Store and Selector are
// required; the rest have defaults.
type Deps struct {
	Store    store.CorpusStore
	Selector selection.Service
	Emitter  events.EventEmitter
	Logger   *slog.Logger
	Settings Settings
	// Clock defaults to time.Now.
	Clock func() time.Time
	// ID defaults to a random UUID.
	ID uuid.UUID
}

// Controller runs one session. See the package documentation.
type Controller struct {
	id       uuid.UUID
	store    store.CorpusStore
	selector selection.Service
	emitter  events.EventEmitter
	logger   *slog.Logger
	now      func() time.Time
	settings Settings

	state State
	opts  Options
	round int
	deck  domain.Deck
	idx   int
	seen  domain.SeenSet
	seed  int64
	auto  bool

	roundsCompleted int
	startedAt       time.Time
	endedAt         time.Time
	lastAdvance     time.Time
	restStarted     time.Time
	countdown       rest.Countdown
}

// NewController returns a Controller in the Idle state.
func NewController(deps Deps) (*Controller, error) {
	if deps.Store == nil {
		return nil, errors.Join(ErrMissingDependency, errors.New("corpus store is nil"))
	}
	if deps.Selector == nil {
		return nil, errors.Join(ErrMissingDependency, errors.New("selector is nil"))
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.ID == uuid.Nil {
		deps.ID = uuid.New()
	}
	if deps.Settings == (Settings{}) {
		deps.Settings = DefaultSettings()
	}

	return &Controller{
		id:       deps.ID,
		store:    deps.Store,
		selector: deps.Selector,
		emitter:  deps.Emitter,
		logger: deps.Logger.With(
			slog.String("component", "session_controller"),
			slog.String("session_id", deps.ID.String()),
		),
		now:      deps.Clock,
		settings: deps.Settings,
		state:    Idle,
		seen:     domain.NewSeenSet(),
	}, nil
}

// ID returns the session identifier.
func (c *Controller) ID() uuid.UUID { return c.id }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Options returns the options of the configured session.
func (c *Controller) Options() Options { return c.opts }

// Auto reports whether auto-advance is on.
func (c *Controller) Auto() bool { return c.auto }

// Seen returns a copy of the seen set.
func (c *Controller) Seen() domain.SeenSet { return c.seen.Clone() }

// Deck returns a copy of the current deck.
func (c *Controller) Deck() domain.Deck { return append(domain.Deck(nil), c.deck...) }

// Seed returns the seed the current round was drawn with.
func (c *Controller) Seed() int64 { return c.seed }

// Configure validates opts and enters Configuring, discarding any previous
// session state including the seen set.
func (c *Controller) Configure(ctx context.Context, opts Options) error {
	if err := guard(c.state, InputConfigure); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	c.reset()
	c.opts = opts
	c.state = Configuring

	c.logger.InfoContext(ctx, "session configured",
		slog.String("corpus", opts.Key().String()),
		slog.Int("page", opts.Page),
		slog.Bool("session_mode", opts.SessionMode))
	c.emit(ctx, events.TypeSessionConfigured, events.SessionConfigured{
		Corpus:      opts.Key().String(),
		Page:        opts.Page,
		SessionMode: opts.SessionMode,
		SeedFixed:   opts.Seed != nil,
	})
	return nil
}

// StartRound1 builds the first deck and enters RoundActive. Auto-advance
// starts on in session mode and off in manual mode.
func (c *Controller) StartRound1(ctx context.Context) error {
	if err := guard(c.state, InputStart); err != nil {
		return err
	}

	c.seen = domain.NewSeenSet()
	c.startedAt = c.now()
	c.auto = c.opts.SessionMode
	c.enterRound(ctx, 1)
	return nil
}

// Advance moves past the current card, recording its keyword as seen.
// Leaving the last card ends the round: the session rests, completes after
// round three, or halts in manual mode.
func (c *Controller) Advance(ctx context.Context) error {
	if err := guard(c.state, InputAdvance); err != nil {
		return err
	}

	if len(c.deck) > 0 {
		c.seen.Add(c.deck[c.idx].Keyword)
	}
	c.lastAdvance = c.now()

	if c.idx < len(c.deck)-1 {
		c.idx++
		c.emitCardShown(ctx)
		return nil
	}

	c.endRound(ctx)
	return nil
}

// GoBack steps to the previous card. It never changes the seen set.
func (c *Controller) GoBack(ctx context.Context) error {
	if err := guard(c.state, InputBack); err != nil {
		return err
	}

	c.lastAdvance = c.now()
	if c.idx > 0 {
		c.idx--
		c.emitCardShown(ctx)
	}
	return nil
}

// ToggleAuto flips auto-advance and returns the new setting. Turning it on
// restarts the interval from now.
func (c *Controller) ToggleAuto(ctx context.Context) (bool, error) {
	if err := guard(c.state, InputToggleAuto); err != nil {
		return c.auto, err
	}

	c.auto = !c.auto
	if c.auto {
		c.lastAdvance = c.now()
	}
	c.logger.DebugContext(ctx, "auto-advance toggled", slog.Bool("auto", c.auto))
	return c.auto, nil
}

// SkipRest ends the current rest early and starts the next round.
func (c *Controller) SkipRest(ctx context.Context) error {
	if err := guard(c.state, InputSkipRest); err != nil {
		return err
	}
	c.enterRound(ctx, c.round+1)
	return nil
}

// Tick evaluates the time-driven conditions once: an elapsed rest starts the
// next round, and an elapsed auto interval advances one card. It reports
// whether anything changed. States without timers ignore ticks.
func (c *Controller) Tick(ctx context.Context) (bool, error) {
	now := c.now()

	switch c.state {
	case Resting:
		if !c.countdown.Done(now.Sub(c.restStarted)) {
			return false, nil
		}
		if err := guard(c.state, InputRestElapsed); err != nil {
			return false, err
		}
		c.enterRound(ctx, c.round+1)
		return true, nil

	case RoundActive:
		// An empty deck waits for the user instead of running the session out.
		if !c.auto || len(c.deck) == 0 || now.Sub(c.lastAdvance) < c.settings.AutoInterval {
			return false, nil
		}
		return true, c.Advance(ctx)

	default:
		return false, nil
	}
}

// Exit discards the session and returns to Idle.
func (c *Controller) Exit(ctx context.Context) error {
	if err := guard(c.state, InputExit); err != nil {
		return err
	}

	payload := c.ended()
	c.logger.InfoContext(ctx, "session exited",
		slog.String("from", c.state.String()),
		slog.Int("rounds_completed", c.roundsCompleted))
	c.emit(ctx, events.TypeSessionExited, payload)

	c.reset()
	c.state = Idle
	return nil
}

// CurrentCard returns the card on screen, if any.
func (c *Controller) CurrentCard() (domain.Card, bool) {
	if c.state != RoundActive || len(c.deck) == 0 {
		return domain.Card{}, false
	}
	return c.deck[c.idx], true
}

// Progress is the learner's position in the session.
type Progress struct {
	Round int `json:"round"`
	Index int `json:"index"`
	Total int `json:"total"`
}

// Progress returns the round number and the position in the current deck.
func (c *Controller) Progress() Progress {
	return Progress{Round: c.round, Index: c.idx, Total: len(c.deck)}
}

// RestStatus returns the countdown and breathing phase while resting.
func (c *Controller) RestStatus() (rest.Status, bool) {
	if c.state != Resting {
		return rest.Status{}, false
	}
	return c.countdown.StatusAt(c.now().Sub(c.restStarted)), true
}

// SessionSummary reports a finished session.
type SessionSummary struct {
	Corpus          string        `json:"corpus"`
	RoundsCompleted int           `json:"rounds_completed"`
	SeenCount       int           `json:"seen_count"`
	Elapsed         time.Duration `json:"-"`
	ElapsedMS       int64         `json:"elapsed_ms"`
}

// Summary returns the session summary once the session has completed or
// halted.
func (c *Controller) Summary() (SessionSummary, bool) {
	if c.state != Summary && c.state != Halted {
		return SessionSummary{}, false
	}
	elapsed := c.endedAt.Sub(c.startedAt)
	return SessionSummary{
		Corpus:          c.opts.Key().String(),
		RoundsCompleted: c.roundsCompleted,
		SeenCount:       c.seen.Len(),
		Elapsed:         elapsed,
		ElapsedMS:       elapsed.Milliseconds(),
	}, true
}

// endRound handles leaving the last card of a round.
func (c *Controller) endRound(ctx context.Context) {
	c.roundsCompleted++
	now := c.now()

	switch {
	case !c.opts.SessionMode:
		c.state = Halted
		c.endedAt = now
		c.logger.InfoContext(ctx, "manual round finished", slog.Int("seen", c.seen.Len()))
		c.emit(ctx, events.TypeSessionHalted, c.ended())

	case c.round >= Rounds:
		c.state = Summary
		c.endedAt = now
		c.logger.InfoContext(ctx, "session completed",
			slog.Int("seen", c.seen.Len()),
			slog.Duration("elapsed", now.Sub(c.startedAt)))
		c.emit(ctx, events.TypeSessionCompleted, c.ended())

	default:
		c.state = Resting
		c.restStarted = now
		c.countdown = rest.NewCountdown(c.settings.RestDuration)
		c.logger.DebugContext(ctx, "rest started", slog.Int("after_round", c.round))
		c.emit(ctx, events.TypeRestStarted, events.RestStarted{
			AfterRound: c.round,
			Seconds:    c.countdown.Remaining(0),
		})
	}
}

// enterRound builds the deck for round n and shows its first card.
func (c *Controller) enterRound(ctx context.Context, n int) {
	deck, policy, seed := c.buildDeck(ctx, n)

	c.round = n
	c.deck = deck
	c.idx = 0
	c.seed = seed
	c.state = RoundActive
	c.lastAdvance = c.now()
	if c.opts.SessionMode {
		c.auto = true
	}

	c.logger.InfoContext(ctx, "round started",
		slog.Int("round", n),
		slog.String("policy", policy),
		slog.Int("cards", len(deck)))
	c.emit(ctx, events.TypeRoundStarted, events.RoundStarted{
		Round:  n,
		Policy: policy,
		Seed:   seed,
		Total:  len(deck),
	})
	if len(deck) > 0 {
		c.emitCardShown(ctx)
	}
}

func (c *Controller) ended() events.SessionEnded {
	end := c.endedAt
	if end.IsZero() {
		end = c.now()
	}
	var elapsed time.Duration
	if !c.startedAt.IsZero() {
		elapsed = end.Sub(c.startedAt)
	}
	return events.SessionEnded{
		RoundsCompleted: c.roundsCompleted,
		SeenCount:       c.seen.Len(),
		ElapsedMS:       elapsed.Milliseconds(),
	}
}

func (c *Controller) reset() {
	c.opts = Options{}
	c.round = 0
	c.deck = nil
	c.idx = 0
	c.seen = domain.NewSeenSet()
	c.seed = 0
	c.auto = false
	c.roundsCompleted = 0
	c.startedAt = time.Time{}
	c.endedAt = time.Time{}
	c.lastAdvance = time.Time{}
	c.restStarted = time.Time{}
	c.countdown = rest.Countdown{}
}

func (c *Controller) emitCardShown(ctx context.Context) {
	c.emit(ctx, events.TypeCardShown, events.CardShown{
		Round: c.round,
		Index: c.idx,
		Total: len(c.deck),
		Card:  c.deck[c.idx],
	})
}

// emit publishes an event. Handler failures are logged and never affect the
// session.
func (c *Controller) emit(ctx context.Context, eventType string, payload any) {
	if c.emitter == nil {
		return
	}
	event, err := events.NewEvent(eventType, c.id, c.now(), payload)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		c.logger.WarnContext(ctx, "event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
