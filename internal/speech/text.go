package speech

import (
	"strings"

	"github.com/phrazzld/flashloop/internal/domain"
)

// maxBundleLines caps how many pattern sub-lines are read aloud.
const maxBundleLines = 3

// Lang selects the voice.
type Lang string

const (
	LangEN Lang = "en"
	LangKO Lang = "ko"
)

// Utterance is one piece of text in one voice.
type Utterance struct {
	Lang Lang
	Text string
}

// EnglishText is what gets read in English for a card: the keyword and the
// first example lines of a pattern bundle, or the usage line, or the keyword.
func EnglishText(c domain.Card) string {
	if c.Category == domain.CategoryPattern && len(c.Items) > 0 {
		lines := []string{c.Keyword}
		for _, it := range firstItems(c.Items) {
			if it.EN != "" {
				lines = append(lines, it.EN)
			}
		}
		return strings.Join(lines, "\n")
	}
	if s := strings.TrimSpace(c.UsageOneLiner); s != "" {
		return s
	}
	return c.Keyword
}

// KoreanText is the meaning, or the Korean lines of a bundle when the card
// has no meaning.
func KoreanText(c domain.Card) string {
	if s := strings.TrimSpace(c.Meaning); s != "" {
		return s
	}
	var lines []string
	for _, it := range firstItems(c.Items) {
		if it.KO != "" {
			lines = append(lines, it.KO)
		}
	}
	return strings.Join(lines, "\n")
}

// CardUtterances returns the English then Korean readings of a card,
// skipping empty ones.
func CardUtterances(c domain.Card) []Utterance {
	var out []Utterance
	if s := EnglishText(c); s != "" {
		out = append(out, Utterance{Lang: LangEN, Text: s})
	}
	if s := KoreanText(c); s != "" {
		out = append(out, Utterance{Lang: LangKO, Text: s})
	}
	return out
}

func firstItems(items []domain.BundleItem) []domain.BundleItem {
	if len(items) > maxBundleLines {
		return items[:maxBundleLines]
	}
	return items
}
