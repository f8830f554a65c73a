package corpusfile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/phrazzld/flashloop/internal/domain"
)

// Extensions in lookup order.
var extensions = []string{".json", ".yaml", ".yml"}

// dataSubdir is searched after the root directory.
const dataSubdir = "data"

// ResourceName returns the file stem for a corpus partition, without
// extension. Unknown English categories resolve to vocab.
func ResourceName(key domain.CorpusKey) string {
	if key.IsEnglish() {
		return "english_" + EnglishCategory(key.Category)
	}
	return fmt.Sprintf("%s_L%d", strings.ToLower(key.Domain), key.Level)
}

// MasterResourceName returns the file stem of a domain's master superset.
func MasterResourceName(domainName string) string {
	return strings.ToLower(domainName) + "_master"
}

// EnglishCategory normalizes an English category, falling back to vocab.
func EnglishCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if slices.Contains(domain.EnglishCategories, c) {
		return c
	}
	return domain.CategoryVocab
}

var (
	levelFile   = regexp.MustCompile(`^([a-z0-9]+)_L(\d+)$`)
	masterFile  = regexp.MustCompile(`^([a-z0-9]+)_master$`)
	englishFile = regexp.MustCompile(`^english_([a-z]+)$`)
)

// Partition is one corpus file found on disk.
type Partition struct {
	Key    domain.CorpusKey
	Master bool
	Path   string
}

// parseName maps a file name back to its partition. ok is false for files
// that are not corpus resources.
func parseName(path string) (Partition, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(extensions, ext) {
		return Partition{}, false
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if m := englishFile.FindStringSubmatch(stem); m != nil {
		if !slices.Contains(domain.EnglishCategories, m[1]) {
			return Partition{}, false
		}
		return Partition{
			Key:  domain.CorpusKey{Domain: domain.DomainEnglish, Category: m[1]},
			Path: path,
		}, true
	}
	if m := masterFile.FindStringSubmatch(stem); m != nil {
		return Partition{Key: domain.CorpusKey{Domain: m[1]}, Master: true, Path: path}, true
	}
	if m := levelFile.FindStringSubmatch(stem); m != nil {
		level, err := strconv.Atoi(m[2])
		if err != nil {
			return Partition{}, false
		}
		return Partition{Key: domain.CorpusKey{Domain: m[1], Level: level}, Path: path}, true
	}
	return Partition{}, false
}
