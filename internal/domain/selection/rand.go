package selection

import (
	"math/rand"

	"github.com/phrazzld/flashloop/internal/domain"
)

// newRand returns a generator fully determined by seed.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// shuffle permutes cards in place.
func shuffle(rng *rand.Rand, cards []domain.Card) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// sample draws k cards without replacement, in draw order.
// The input slice is left untouched.
func sample(rng *rand.Rand, cards []domain.Card, k int) []domain.Card {
	if k > len(cards) {
		k = len(cards)
	}
	if k <= 0 {
		return nil
	}

	idx := make([]int, len(cards))
	for i := range idx {
		idx[i] = i
	}

	out := make([]domain.Card, 0, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, cards[idx[i]])
	}
	return out
}

// partitionSeen splits cards into those whose keyword is not in seen and the
// rest, both in corpus order.
func partitionSeen(cards []domain.Card, seen domain.SeenSet) (unseen, rest []domain.Card) {
	for _, c := range cards {
		if seen.Has(c.Keyword) {
			rest = append(rest, c)
		} else {
			unseen = append(unseen, c)
		}
	}
	return unseen, rest
}

// dedupByKeyword keeps the first occurrence of each keyword, preserving order.
func dedupByKeyword(cards []domain.Card) []domain.Card {
	seen := make(map[string]struct{}, len(cards))
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if _, ok := seen[c.Keyword]; ok {
			continue
		}
		seen[c.Keyword] = struct{}{}
		out = append(out, c)
	}
	return out
}

// picker accumulates a deck while refusing repeated keywords.
type picker struct {
	deck  domain.Deck
	taken map[string]struct{}
}

func newPicker(capacity int) *picker {
	return &picker{
		deck:  make(domain.Deck, 0, capacity),
		taken: make(map[string]struct{}, capacity),
	}
}

// takeUntil appends cards not yet taken until the deck holds target cards.
func (p *picker) takeUntil(cards []domain.Card, target int) {
	for _, c := range cards {
		if len(p.deck) >= target {
			return
		}
		if _, ok := p.taken[c.Keyword]; ok {
			continue
		}
		p.taken[c.Keyword] = struct{}{}
		p.deck = append(p.deck, c)
	}
}

// repeatUntil cycles through cards, duplicates allowed, until the deck holds
// target cards.
func (p *picker) repeatUntil(cards []domain.Card, target int) {
	if len(cards) == 0 {
		return
	}
	for i := 0; len(p.deck) < target; i++ {
		p.deck = append(p.deck, cards[i%len(cards)])
	}
}
