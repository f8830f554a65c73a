// Package domain contains the core entities of the trainer: cards, corpus
// keys, decks and the per-session seen set. It is independent of any storage
// or delivery mechanism; the selection engine and rest timer live in its
// subpackages.
package domain
