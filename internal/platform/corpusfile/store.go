package corpusfile

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/store"
)

// Store reads corpus partitions from a directory.
type Store struct {
	dir    string
	logger *slog.Logger

	mu       sync.RWMutex
	watching bool
	cache    map[string][]domain.Card
}

var _ store.CorpusStore = (*Store)(nil)

// New returns a Store rooted at dir.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "corpus_file_store")),
		cache:  make(map[string][]domain.Card),
	}
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// LoadCorpus implements store.CorpusStore.
func (s *Store) LoadCorpus(ctx context.Context, key domain.CorpusKey) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key.IsEnglish() {
		key.Category = EnglishCategory(key.Category)
	}
	return s.load(ResourceName(key), key, false)
}

// LoadMaster implements store.CorpusStore.
func (s *Store) LoadMaster(ctx context.Context, domainName string) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load(MasterResourceName(domainName), domain.CorpusKey{Domain: domainName}, true)
}

func (s *Store) load(stem string, key domain.CorpusKey, master bool) ([]domain.Card, error) {
	path, ok := s.locate(stem)
	if !ok {
		return nil, store.NewStoreError("corpus", "load", stem, store.ErrCorpusNotFound)
	}

	s.mu.RLock()
	cached, hit := s.cache[path]
	s.mu.RUnlock()
	if hit {
		return append([]domain.Card(nil), cached...), nil
	}

	cards, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	cards = inherit(cards, key, master)

	s.mu.Lock()
	if s.watching {
		s.cache[path] = cards
	}
	s.mu.Unlock()

	s.logger.Debug("loaded corpus file",
		slog.String("resource", stem),
		slog.Int("cards", len(cards)))
	return append([]domain.Card(nil), cards...), nil
}

// locate finds the first existing file for stem in the root directory and
// then in its data subdirectory.
func (s *Store) locate(stem string) (string, bool) {
	for _, dir := range []string{s.dir, filepath.Join(s.dir, dataSubdir)} {
		for _, ext := range extensions {
			p := filepath.Join(dir, stem+ext)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, true
			}
		}
	}
	return "", false
}

// Partitions lists every corpus file under the directory, root entries
// first. A partition present in both locations is reported once.
func (s *Store) Partitions(ctx context.Context) ([]Partition, error) {
	var out []Partition
	seen := make(map[string]bool)

	for _, dir := range []string{s.dir, filepath.Join(s.dir, dataSubdir)} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, store.NewStoreError("corpus", "list", filepath.Base(dir), err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			p, ok := parseName(filepath.Join(dir, e.Name()))
			if !ok {
				continue
			}
			id := p.Key.String()
			if p.Master {
				id += "/master"
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}

// LoadPartition decodes a partition returned by Partitions.
func (s *Store) LoadPartition(ctx context.Context, p Partition) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cards, err := decodeFile(p.Path)
	if err != nil {
		return nil, err
	}
	return inherit(cards, p.Key, p.Master), nil
}
