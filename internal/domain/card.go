package domain

import (
	"errors"
	"strings"
)

// Card-specific validation errors
var (
	// ErrCardKeywordEmpty is returned when a card has no keyword.
	ErrCardKeywordEmpty = errors.New("card keyword cannot be empty")

	// ErrCardDomainEmpty is returned when a card has no domain.
	ErrCardDomainEmpty = errors.New("card domain cannot be empty")

	// ErrCardLevelInvalid is returned when a card level is negative.
	ErrCardLevelInvalid = errors.New("card level cannot be negative")
)

// Tags recognized by the selection engine. Other tags are carried but ignored.
const (
	TagCore    = "core"
	TagApplied = "applied"
)

// CategoryPattern marks bundle-style cards whose content lives in Items.
const CategoryPattern = "pattern"

// BundleItem is one sub-line of a pattern card.
type BundleItem struct {
	EN string `json:"en" yaml:"en"`
	KO string `json:"ko" yaml:"ko"`
}

// Card is a single flashcard drawn from a corpus partition.
//
// Keyword is the de-facto identifier within a partition. Uniqueness is not
// enforced at load time; the selection engine deduplicates by keyword where
// it promises distinct cards.
type Card struct {
	Domain        string       `json:"domain,omitempty" yaml:"domain,omitempty"`
	Category      string       `json:"category,omitempty" yaml:"category,omitempty"`
	Level         int          `json:"level,omitempty" yaml:"level,omitempty"`
	Keyword       string       `json:"keyword" yaml:"keyword"`
	Meaning       string       `json:"meaning" yaml:"meaning"`
	UsageOneLiner string       `json:"usage_one_liner" yaml:"usage_one_liner"`
	Tags          []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Items         []BundleItem `json:"items,omitempty" yaml:"items,omitempty"`
	OrderIndex    int          `json:"order_index" yaml:"order_index"`
	BundleID      *int         `json:"bundle_id,omitempty" yaml:"bundle_id,omitempty"`
}

// HasTag reports whether the card carries the given tag.
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsBundle reports whether the card is a pattern bundle with sub-lines.
func (c Card) IsBundle() bool {
	return c.Category == CategoryPattern && len(c.Items) > 0
}

// Validate checks the fields a corpus loader must provide.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Keyword) == "" {
		return ErrCardKeywordEmpty
	}
	if strings.TrimSpace(c.Domain) == "" {
		return ErrCardDomainEmpty
	}
	if c.Level < 0 {
		return ErrCardLevelInvalid
	}
	return nil
}
