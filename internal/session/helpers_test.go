package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/domain/selection"
	"github.com/phrazzld/flashloop/internal/events"
	"github.com/phrazzld/flashloop/internal/store"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type fakeStore struct {
	corpora map[domain.CorpusKey][]domain.Card
	masters map[string][]domain.Card
	loads   int
}

func (s *fakeStore) LoadCorpus(_ context.Context, key domain.CorpusKey) ([]domain.Card, error) {
	s.loads++
	cards, ok := s.corpora[key]
	if !ok {
		return nil, store.NewStoreError("corpus", "load", key.String(), store.ErrCorpusNotFound)
	}
	return append([]domain.Card(nil), cards...), nil
}

func (s *fakeStore) LoadMaster(_ context.Context, name string) ([]domain.Card, error) {
	cards, ok := s.masters[name]
	if !ok {
		return nil, store.ErrCorpusNotFound
	}
	return append([]domain.Card(nil), cards...), nil
}

func makeCards(prefix string, n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{
			Domain:     prefix,
			Keyword:    fmt.Sprintf("%s-%d", prefix, i),
			Meaning:    fmt.Sprintf("meaning %d", i),
			OrderIndex: i,
		}
		switch i % 4 {
		case 0:
			cards[i].Tags = []string{domain.TagCore}
		case 1:
			cards[i].Tags = []string{domain.TagApplied}
		}
	}
	return cards
}

type harness struct {
	ctrl     *Controller
	clock    *fakeClock
	store    *fakeStore
	recorder *events.Recorder
	selector selection.Service
}

func newHarness(t *testing.T, st *fakeStore) *harness {
	t.Helper()
	sel, err := selection.NewDefaultService()
	require.NoError(t, err)

	clock := newFakeClock()
	rec := &events.Recorder{}
	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(rec)

	ctrl, err := NewController(Deps{
		Store:    st,
		Selector: sel,
		Emitter:  emitter,
		Logger:   discardLogger(),
		Clock:    clock.Now,
	})
	require.NoError(t, err)

	return &harness{ctrl: ctrl, clock: clock, store: st, recorder: rec, selector: sel}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seed(v int64) *int64 { return &v }

// advanceThroughRound advances past every card of the current round and
// checks the seen set never shrinks.
func advanceThroughRound(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	total := len(c.deck)
	prev := c.seen.Len()
	for i := 0; i < total; i++ {
		require.Equal(t, RoundActive, c.State())
		require.NoError(t, c.Advance(ctx))
		require.GreaterOrEqual(t, c.seen.Len(), prev, "seen set shrank")
		prev = c.seen.Len()
	}
}
