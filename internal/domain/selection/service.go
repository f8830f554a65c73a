package selection

import (
	"github.com/phrazzld/flashloop/internal/domain"
)

// Service defines the selection policies consumed by the session controller.
type Service interface {
	// FillToPage returns the first page cards of corpus, padded from master
	// with keywords not already present when corpus is short.
	FillToPage(corpus []domain.Card, page int, master []domain.Card) domain.Deck

	// SampleUniform draws min(page, len(corpus)) cards without replacement,
	// ignoring the seen set.
	SampleUniform(corpus []domain.Card, page int, seed int64) domain.Deck

	// SampleAlwaysRandom draws min(k, len(corpus)) distinct cards, reaching
	// for seen cards only when unseen supply is insufficient.
	SampleAlwaysRandom(corpus []domain.Card, seen domain.SeenSet, k int, seed int64) domain.Deck

	// SampleMixedWeighted builds the tag-weighted round-3 deck of exactly
	// page cards for any non-empty corpus.
	SampleMixedWeighted(corpus []domain.Card, seen domain.SeenSet, page int, seed int64) domain.Deck
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new selection service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new selection service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultService{params: params}, nil
}

func (s *defaultService) FillToPage(corpus []domain.Card, page int, master []domain.Card) domain.Deck {
	return fillToPage(corpus, page, master)
}

func (s *defaultService) SampleUniform(corpus []domain.Card, page int, seed int64) domain.Deck {
	return sampleUniform(corpus, page, newRand(seed))
}

func (s *defaultService) SampleAlwaysRandom(
	corpus []domain.Card,
	seen domain.SeenSet,
	k int,
	seed int64,
) domain.Deck {
	return sampleAlwaysRandom(corpus, seen, k, newRand(seed))
}

func (s *defaultService) SampleMixedWeighted(
	corpus []domain.Card,
	seen domain.SeenSet,
	page int,
	seed int64,
) domain.Deck {
	return sampleMixedWeighted(corpus, seen, page, newRand(seed), s.params)
}

// FillToPage applies the default fill policy.
func FillToPage(corpus []domain.Card, page int, master []domain.Card) domain.Deck {
	return fillToPage(corpus, page, master)
}

// SampleUniform applies the default uniform policy.
func SampleUniform(corpus []domain.Card, page int, seed int64) domain.Deck {
	return sampleUniform(corpus, page, newRand(seed))
}

// SampleAlwaysRandom applies the default English policy.
func SampleAlwaysRandom(corpus []domain.Card, seen domain.SeenSet, k int, seed int64) domain.Deck {
	return sampleAlwaysRandom(corpus, seen, k, newRand(seed))
}

// SampleMixedWeighted applies the round-3 policy with default parameters.
func SampleMixedWeighted(corpus []domain.Card, seen domain.SeenSet, page int, seed int64) domain.Deck {
	return sampleMixedWeighted(corpus, seen, page, newRand(seed), NewDefaultParams())
}
