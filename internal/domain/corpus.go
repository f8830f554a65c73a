package domain

import (
	"fmt"
	"sort"
	"strings"
)

// DomainEnglish is the one domain addressed by category instead of level.
const DomainEnglish = "english"

// English corpus categories.
const (
	CategoryVocab        = "vocab"
	CategoryCoding       = "coding"
	CategoryConversation = "conversation"
)

// EnglishCategories lists the categories the English domain ships with.
var EnglishCategories = []string{CategoryVocab, CategoryCoding, CategoryPattern, CategoryConversation}

// CorpusKey addresses one corpus partition.
// Level is 0 for English categories; Category is ignored for leveled domains.
type CorpusKey struct {
	Domain   string
	Category string
	Level    int
}

// IsEnglish reports whether the key addresses the English domain.
func (k CorpusKey) IsEnglish() bool {
	return strings.EqualFold(k.Domain, DomainEnglish)
}

// String renders the key the way the trainer labels a partition, e.g.
// "PYTHON·L2" or "ENGLISH·vocab".
func (k CorpusKey) String() string {
	if k.IsEnglish() {
		return fmt.Sprintf("%s·%s", strings.ToUpper(k.Domain), k.Category)
	}
	return fmt.Sprintf("%s·L%d", strings.ToUpper(k.Domain), k.Level)
}

// Deck is the ordered set of cards shown during one round.
type Deck []Card

// Keywords returns the deck's keywords in deck order.
func (d Deck) Keywords() []string {
	out := make([]string, len(d))
	for i, c := range d {
		out[i] = c.Keyword
	}
	return out
}

// SeenSet tracks the keywords a learner has advanced past in one session.
// The zero value is not usable; create one with NewSeenSet.
type SeenSet map[string]struct{}

// NewSeenSet returns an empty seen set, optionally seeded with keywords.
func NewSeenSet(keywords ...string) SeenSet {
	s := make(SeenSet, len(keywords))
	for _, kw := range keywords {
		s.Add(kw)
	}
	return s
}

// Add records a keyword.
func (s SeenSet) Add(keyword string) {
	s[keyword] = struct{}{}
}

// Has reports whether keyword has been seen. A nil set has seen nothing.
func (s SeenSet) Has(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

// Len returns the number of distinct keywords seen.
func (s SeenSet) Len() int {
	return len(s)
}

// Keywords returns the seen keywords sorted.
func (s SeenSet) Keywords() []string {
	out := make([]string, 0, len(s))
	for kw := range s {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s SeenSet) Clone() SeenSet {
	out := make(SeenSet, len(s))
	for kw := range s {
		out[kw] = struct{}{}
	}
	return out
}
