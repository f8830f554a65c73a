// Package selection implements the card-selection engine: the policies that
// build a round's deck from a corpus and the session's seen set.
//
// Every policy is a pure function of its inputs. Randomness comes only from a
// generator seeded by the caller, so the same (corpus, seen set, page, seed)
// always yields the same deck. Empty corpora and non-positive page sizes
// produce empty decks; no policy returns an error.
package selection
