package selection

import (
	"math/rand"

	"github.com/phrazzld/flashloop/internal/domain"
)

// fillToPage returns the first page cards of corpus in corpus order. When the
// corpus is short it is padded with master cards whose keyword is not already
// present, in master order.
func fillToPage(corpus []domain.Card, page int, master []domain.Card) domain.Deck {
	if page <= 0 || len(corpus) == 0 {
		return domain.Deck{}
	}
	if len(corpus) >= page {
		return append(domain.Deck{}, corpus[:page]...)
	}

	p := newPicker(page)
	p.deck = append(p.deck, corpus...)
	for _, c := range corpus {
		p.taken[c.Keyword] = struct{}{}
	}
	p.takeUntil(master, page)
	return p.deck
}

// sampleUniform draws min(page, distinct keywords) cards without replacement.
// It does not consult the seen set: round 2 may resurface round-1 cards.
func sampleUniform(corpus []domain.Card, page int, rng *rand.Rand) domain.Deck {
	if page <= 0 || len(corpus) == 0 {
		return domain.Deck{}
	}
	return append(domain.Deck{}, sample(rng, dedupByKeyword(corpus), page)...)
}

// sampleAlwaysRandom draws k cards preferring keywords outside seen. Seen
// cards are only drawn when unseen supply runs out.
func sampleAlwaysRandom(corpus []domain.Card, seen domain.SeenSet, k int, rng *rand.Rand) domain.Deck {
	if k <= 0 || len(corpus) == 0 {
		return domain.Deck{}
	}

	// Repeated keywords would otherwise be drawn twice in one deck.
	corpus = dedupByKeyword(corpus)
	unseen, _ := partitionSeen(corpus, seen)
	chosen := append(domain.Deck{}, sample(rng, unseen, k)...)
	if len(chosen) >= k {
		return chosen
	}

	picked := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		picked[c.Keyword] = struct{}{}
	}
	restPool := make([]domain.Card, 0, len(corpus)-len(chosen))
	for _, c := range corpus {
		if _, ok := picked[c.Keyword]; !ok {
			restPool = append(restPool, c)
		}
	}

	return append(chosen, sample(rng, restPool, k-len(chosen))...)
}

// sampleMixedWeighted builds the round-3 deck.
//
// The candidate pool starts with unseen cards and is padded, in order, with
// the shuffled seen cards and then a shuffled replication of the corpus. The
// shuffled, keyword-deduplicated pool is then drawn from in tag priority:
// up to CoreQuota "core" cards, "applied" cards up to AppliedQuota in total,
// then the rest of the pool, then the corpus in natural order. A corpus with
// fewer distinct keywords than page is topped up from the replication with
// repeats, so the deck always reaches page cards.
func sampleMixedWeighted(
	corpus []domain.Card,
	seen domain.SeenSet,
	page int,
	rng *rand.Rand,
	params *Params,
) domain.Deck {
	if page <= 0 || len(corpus) == 0 {
		return domain.Deck{}
	}

	unseen, rest := partitionSeen(corpus, seen)
	pool := append([]domain.Card{}, unseen...)
	if len(pool) < page {
		shuffle(rng, rest)
		pool = append(pool, rest...)
	}

	var replicated []domain.Card
	if len(pool) < page {
		reps := (page+len(corpus)-1)/len(corpus) + params.ReplicationPad
		replicated = make([]domain.Card, 0, reps*len(corpus))
		for i := 0; i < reps; i++ {
			replicated = append(replicated, corpus...)
		}
		shuffle(rng, replicated)
		pool = append(pool, replicated...)
	}

	shuffle(rng, pool)
	pool = dedupByKeyword(pool)

	core, applied := bucketByTag(pool)
	shuffle(rng, core)
	shuffle(rng, applied)

	p := newPicker(page)
	p.takeUntil(core, min(params.CoreQuota, page))
	p.takeUntil(applied, min(params.AppliedQuota, page))
	p.takeUntil(pool, page)
	p.takeUntil(corpus, page)

	if len(p.deck) < page {
		if len(replicated) > 0 {
			p.repeatUntil(replicated, page)
		} else {
			p.repeatUntil(corpus, page)
		}
	}

	return p.deck[:page]
}

// bucketByTag splits cards into "core" and "applied" buckets. A card tagged
// both counts as core only. Untagged cards belong to neither.
func bucketByTag(cards []domain.Card) (core, applied []domain.Card) {
	for _, c := range cards {
		switch {
		case c.HasTag(domain.TagCore):
			core = append(core, c)
		case c.HasTag(domain.TagApplied):
			applied = append(applied, c)
		}
	}
	return core, applied
}
