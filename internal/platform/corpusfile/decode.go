package corpusfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/store"
	"gopkg.in/yaml.v3"
)

// decodeFile reads a card list from path, choosing the codec by extension.
func decodeFile(path string) ([]domain.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, store.NewStoreError("corpus", "read", filepath.Base(path), err)
	}

	var cards []domain.Card
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cards)
	default:
		err = json.Unmarshal(data, &cards)
	}
	if err != nil {
		return nil, store.NewStoreError(
			"corpus",
			"decode",
			filepath.Base(path),
			fmt.Errorf("%w: %v", store.ErrCorpusMalformed, err),
		)
	}
	return cards, nil
}

// inherit fills fields a corpus file may leave implicit from its key.
func inherit(cards []domain.Card, key domain.CorpusKey, master bool) []domain.Card {
	out := make([]domain.Card, len(cards))
	for i, c := range cards {
		if c.Domain == "" {
			c.Domain = strings.ToLower(key.Domain)
		}
		if c.Category == "" && key.IsEnglish() {
			c.Category = key.Category
		}
		if c.Level == 0 && !master && !key.IsEnglish() {
			c.Level = key.Level
		}
		out[i] = c
	}
	return out
}
