package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		card    Card
		wantErr error
	}{
		{
			name: "valid card",
			card: Card{Domain: "python", Level: 1, Keyword: "list comprehension"},
		},
		{
			name:    "empty keyword",
			card:    Card{Domain: "python", Level: 1, Keyword: "  "},
			wantErr: ErrCardKeywordEmpty,
		},
		{
			name:    "empty domain",
			card:    Card{Keyword: "dict"},
			wantErr: ErrCardDomainEmpty,
		},
		{
			name:    "negative level",
			card:    Card{Domain: "mysql", Level: -1, Keyword: "JOIN"},
			wantErr: ErrCardLevelInvalid,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tc.card.Validate(), tc.wantErr)
		})
	}
}

func TestCardHasTag(t *testing.T) {
	t.Parallel()

	c := Card{Keyword: "groupby", Tags: []string{"pandas", TagCore}}
	assert.True(t, c.HasTag(TagCore))
	assert.False(t, c.HasTag(TagApplied))
	assert.False(t, Card{}.HasTag(TagCore))
}

func TestCardIsBundle(t *testing.T) {
	t.Parallel()

	bundle := Card{
		Category: CategoryPattern,
		Keyword:  "I need ~",
		Items:    []BundleItem{{EN: "I need a break.", KO: "잠깐의 휴식 필요해."}},
	}
	assert.True(t, bundle.IsBundle())

	emptyBundle := Card{Category: CategoryPattern, Keyword: "I want to ~"}
	assert.False(t, emptyBundle.IsBundle())

	vocab := Card{Category: CategoryVocab, Keyword: "deploy", Items: bundle.Items}
	assert.False(t, vocab.IsBundle())
}

func TestCorpusKey(t *testing.T) {
	t.Parallel()

	en := CorpusKey{Domain: "English", Category: CategoryVocab}
	assert.True(t, en.IsEnglish())
	assert.Equal(t, "ENGLISH·vocab", en.String())

	py := CorpusKey{Domain: "python", Level: 3}
	assert.False(t, py.IsEnglish())
	assert.Equal(t, "PYTHON·L3", py.String())
}

func TestSeenSet(t *testing.T) {
	t.Parallel()

	s := NewSeenSet("b", "a")
	s.Add("a")
	s.Add("c")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("z"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Keywords())

	clone := s.Clone()
	clone.Add("d")
	assert.False(t, s.Has("d"), "clone must not alias the original")

	var nilSet SeenSet
	assert.False(t, nilSet.Has("a"))
	assert.Equal(t, 0, nilSet.Len())
}

func TestDeckKeywords(t *testing.T) {
	t.Parallel()

	d := Deck{{Keyword: "x"}, {Keyword: "y"}}
	assert.Equal(t, []string{"x", "y"}, d.Keywords())
	assert.Empty(t, Deck(nil).Keywords())
}
