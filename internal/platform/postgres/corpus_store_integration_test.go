//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/platform/postgres"
	"github.com/phrazzld/flashloop/internal/store"
	"github.com/phrazzld/flashloop/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *postgres.CorpusStore {
	t.Helper()
	return postgres.NewCorpusStore(testdb.SetupTestDatabase(t), nil)
}

func TestCorpusStoreRoundTrip(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	bundle := 2

	level := domain.CorpusKey{Domain: "python", Level: 1}
	require.NoError(t, s.ReplacePartition(ctx, level, false, []domain.Card{
		{Keyword: "list", Meaning: "sequence", Tags: []string{domain.TagCore}, OrderIndex: 2},
		{Keyword: "dict", Meaning: "mapping", OrderIndex: 1},
	}))
	require.NoError(t, s.ReplacePartition(ctx, domain.CorpusKey{Domain: "python"}, true, []domain.Card{
		{Keyword: "set", Meaning: "unique items"},
	}))
	english := domain.CorpusKey{Domain: "english", Category: "pattern"}
	require.NoError(t, s.ReplacePartition(ctx, english, false, []domain.Card{
		{Keyword: "used to", BundleID: &bundle, Items: []domain.BundleItem{{EN: "I used to swim.", KO: "수영하곤 했다."}}},
	}))

	cards, err := s.LoadCorpus(ctx, level)
	require.NoError(t, err)
	assert.Equal(t, []string{"dict", "list"}, domain.Deck(cards).Keywords())
	assert.True(t, cards[1].HasTag(domain.TagCore))

	master, err := s.LoadMaster(ctx, "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"set"}, domain.Deck(master).Keywords())

	en, err := s.LoadCorpus(ctx, english)
	require.NoError(t, err)
	require.Len(t, en, 1)
	assert.True(t, en[0].IsBundle())
	assert.Equal(t, 2, *en[0].BundleID)

	require.NoError(t, s.ReplacePartition(ctx, level, false, []domain.Card{{Keyword: "tuple"}}))
	cards, err = s.LoadCorpus(ctx, level)
	require.NoError(t, err)
	assert.Equal(t, []string{"tuple"}, domain.Deck(cards).Keywords())

	_, err = s.LoadCorpus(ctx, domain.CorpusKey{Domain: "python", Level: 5})
	assert.ErrorIs(t, err, store.ErrCorpusNotFound)
}

func TestCorpusStoreWithTxRollsBack(t *testing.T) {
	db := testdb.SetupTestDatabase(t)
	s := postgres.NewCorpusStore(db, nil)
	ctx := context.Background()
	key := domain.CorpusKey{Domain: "go", Level: 2}

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		txStore := s.WithTx(tx)
		require.NoError(t, txStore.ReplacePartition(ctx, key, false, []domain.Card{{Keyword: "chan"}}))

		cards, err := txStore.LoadCorpus(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []string{"chan"}, domain.Deck(cards).Keywords())
	})

	_, err := s.LoadCorpus(ctx, key)
	assert.ErrorIs(t, err, store.ErrCorpusNotFound)
}
