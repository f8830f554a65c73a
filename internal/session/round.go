package session

import (
	"context"
	"log/slog"

	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/domain/selection"
	"github.com/phrazzld/flashloop/internal/redact"
	"github.com/phrazzld/flashloop/internal/store"
)

// Policy names reported with round.started.
const (
	PolicyFillToPage    = "fill_to_page"
	PolicyUniform       = "sample_uniform"
	PolicyMixedWeighted = "sample_mixed_weighted"
	PolicyAlwaysRandom  = "sample_always_random"
)

// Dealer draws round decks from a corpus store.
type Dealer struct {
	Store    store.CorpusStore
	Selector selection.Service
	Logger   *slog.Logger
}

// Deal loads the corpus for opts and draws the deck round n shows, given
// the keywords seen so far and a resolved seed. It reports the policy used.
// An unavailable corpus yields an empty deck.
func (d Dealer) Deal(
	ctx context.Context,
	opts Options,
	n int,
	seen domain.SeenSet,
	seed int64,
) (domain.Deck, string) {
	key := opts.Key()
	page := opts.Page
	corpus := d.loadCorpus(ctx, key)

	if key.IsEnglish() {
		return d.Selector.SampleAlwaysRandom(corpus, seen, page, seed), PolicyAlwaysRandom
	}

	var master []domain.Card
	if opts.FillFromMaster {
		master = d.loadMaster(ctx, key.Domain)
		corpus = d.Selector.FillToPage(corpus, page, master)
	}

	switch n {
	case 1:
		if opts.ShuffleRound1 {
			return d.Selector.SampleUniform(corpus, page, seed), PolicyUniform
		}
		return d.Selector.FillToPage(corpus, page, master), PolicyFillToPage
	case 2:
		return d.Selector.SampleUniform(corpus, page, seed), PolicyUniform
	default:
		return d.Selector.SampleMixedWeighted(corpus, seen, page, seed), PolicyMixedWeighted
	}
}

func (d Dealer) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d Dealer) loadCorpus(ctx context.Context, key domain.CorpusKey) []domain.Card {
	cards, err := d.Store.LoadCorpus(ctx, key)
	if err != nil {
		d.logger().WarnContext(ctx, "corpus unavailable, continuing with no cards",
			slog.String("corpus", key.String()),
			slog.String("error", redact.Error(err)))
		return nil
	}
	return cards
}

func (d Dealer) loadMaster(ctx context.Context, domainName string) []domain.Card {
	cards, err := d.Store.LoadMaster(ctx, domainName)
	if err != nil {
		d.logger().WarnContext(ctx, "master corpus unavailable, skipping padding",
			slog.String("domain", domainName),
			slog.String("error", redact.Error(err)))
		return nil
	}
	return cards
}

// buildDeck resolves the round's seed and deals its deck. The seed is
// resolved here, once per round, so the engine never sees an absent seed.
func (c *Controller) buildDeck(ctx context.Context, n int) (domain.Deck, string, int64) {
	seed := TimeSeed(c.now())
	if c.opts.Seed != nil {
		seed = *c.opts.Seed
	}
	dealer := Dealer{Store: c.store, Selector: c.selector, Logger: c.logger}
	deck, policy := dealer.Deal(ctx, c.opts, n, c.seen, seed)
	return deck, policy, seed
}
