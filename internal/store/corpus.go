package store

import (
	"context"

	"github.com/phrazzld/flashloop/internal/domain"
)

// CorpusStore loads corpus partitions. Implementations return cards in
// corpus order and ErrCorpusNotFound when no resource exists for a key.
type CorpusStore interface {
	// LoadCorpus returns the ordered cards of one partition.
	LoadCorpus(ctx context.Context, key domain.CorpusKey) ([]domain.Card, error)

	// LoadMaster returns the padding superset for a domain.
	LoadMaster(ctx context.Context, domainName string) ([]domain.Card, error)
}

// CorpusWriter replaces whole partitions. Only backends that accept imports
// implement it.
type CorpusWriter interface {
	// ReplacePartition swaps the cards stored for key. A master partition is
	// addressed with master set to true and key.Level ignored.
	ReplacePartition(ctx context.Context, key domain.CorpusKey, master bool, cards []domain.Card) error
}
