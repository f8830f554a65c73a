package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/store"
)

// CorpusStore implements store.CorpusStore and store.CorpusWriter on the
// cards table. It runs on a *sql.DB or, via WithTx, inside a caller's
// transaction.
type CorpusStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var (
	_ store.CorpusStore  = (*CorpusStore)(nil)
	_ store.CorpusWriter = (*CorpusStore)(nil)
)

// NewCorpusStore creates a CorpusStore. If logger is nil, a default logger
// will be used.
func NewCorpusStore(db store.DBTX, logger *slog.Logger) *CorpusStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CorpusStore{
		db:     db,
		logger: logger.With(slog.String("component", "corpus_store")),
	}
}

// WithTx returns a CorpusStore bound to tx. Writes through it join tx
// instead of opening their own transaction.
func (s *CorpusStore) WithTx(tx *sql.Tx) *CorpusStore {
	return &CorpusStore{db: tx, logger: s.logger}
}

const selectCards = `
	SELECT domain, category, level, keyword, meaning, usage_one_liner,
	       tags, items, order_index, bundle_id
	FROM cards
`

const (
	levelPartition    = `WHERE domain = $1 AND level = $2 AND NOT is_master`
	categoryPartition = `WHERE domain = $1 AND category = $2 AND NOT is_master`
	masterPartition   = `WHERE domain = $1 AND is_master`
	partitionOrder    = ` ORDER BY order_index, keyword`
)

// partitionFilter returns the WHERE clause and its arguments for a partition.
func partitionFilter(key domain.CorpusKey, master bool) (string, []any) {
	d := strings.ToLower(key.Domain)
	switch {
	case master:
		return masterPartition, []any{d}
	case key.IsEnglish():
		return categoryPartition, []any{d, key.Category}
	default:
		return levelPartition, []any{d, key.Level}
	}
}

// LoadCorpus implements store.CorpusStore.
func (s *CorpusStore) LoadCorpus(ctx context.Context, key domain.CorpusKey) ([]domain.Card, error) {
	return s.load(ctx, key, false)
}

// LoadMaster implements store.CorpusStore.
func (s *CorpusStore) LoadMaster(ctx context.Context, domainName string) ([]domain.Card, error) {
	return s.load(ctx, domain.CorpusKey{Domain: domainName}, true)
}

func (s *CorpusStore) load(ctx context.Context, key domain.CorpusKey, master bool) ([]domain.Card, error) {
	where, args := partitionFilter(key, master)

	rows, err := s.db.QueryContext(ctx, selectCards+where+partitionOrder, args...)
	if err != nil {
		return nil, store.NewStoreError("corpus", "load", key.String(), MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("corpus", "scan", key.String(), err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("corpus", "load", key.String(), MapError(err))
	}

	if len(cards) == 0 {
		return nil, store.NewStoreError("corpus", "load", key.String(), store.ErrCorpusNotFound)
	}

	s.logger.DebugContext(ctx, "loaded corpus partition",
		slog.String("key", key.String()),
		slog.Bool("master", master),
		slog.Int("cards", len(cards)))
	return cards, nil
}

func scanCard(rows *sql.Rows) (domain.Card, error) {
	var (
		c           domain.Card
		tags, items []byte
		bundleID    sql.NullInt32
	)
	if err := rows.Scan(
		&c.Domain, &c.Category, &c.Level, &c.Keyword, &c.Meaning, &c.UsageOneLiner,
		&tags, &items, &c.OrderIndex, &bundleID,
	); err != nil {
		return domain.Card{}, err
	}
	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return domain.Card{}, fmt.Errorf("%w: tags: %v", store.ErrCorpusMalformed, err)
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return domain.Card{}, fmt.Errorf("%w: items: %v", store.ErrCorpusMalformed, err)
	}
	if len(c.Tags) == 0 {
		c.Tags = nil
	}
	if len(c.Items) == 0 {
		c.Items = nil
	}
	if bundleID.Valid {
		id := int(bundleID.Int32)
		c.BundleID = &id
	}
	return c, nil
}

const insertCard = `
	INSERT INTO cards (id, domain, category, level, is_master, keyword, meaning,
	                   usage_one_liner, tags, items, order_index, bundle_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// ReplacePartition implements store.CorpusWriter. The delete and all inserts
// commit together or not at all.
func (s *CorpusStore) ReplacePartition(
	ctx context.Context,
	key domain.CorpusKey,
	master bool,
	cards []domain.Card,
) error {
	prepared := make([]domain.Card, len(cards))
	for i, c := range cards {
		c.Domain = strings.ToLower(key.Domain)
		if key.IsEnglish() && !master {
			c.Category = key.Category
		}
		if !master && !key.IsEnglish() {
			c.Level = key.Level
		}
		if err := c.Validate(); err != nil {
			return store.NewStoreError(
				"card",
				"replace",
				fmt.Sprintf("card %d", i),
				fmt.Errorf("%w: %w", store.ErrInvalidEntity, err),
			)
		}
		prepared[i] = c
	}

	where, args := partitionFilter(key, master)
	write := func(ctx context.Context, q store.DBTX) error {
		if _, err := q.ExecContext(ctx, "DELETE FROM cards "+where, args...); err != nil {
			return MapError(err)
		}

		stmt, err := q.PrepareContext(ctx, insertCard)
		if err != nil {
			return MapError(err)
		}
		defer func() { _ = stmt.Close() }()

		for _, c := range prepared {
			tags, items, err := encodeLists(c)
			if err != nil {
				return err
			}
			var bundleID any
			if c.BundleID != nil {
				bundleID = *c.BundleID
			}
			if _, err := stmt.ExecContext(ctx,
				uuid.New(), c.Domain, c.Category, c.Level, master, c.Keyword, c.Meaning,
				c.UsageOneLiner, tags, items, c.OrderIndex, bundleID,
			); err != nil {
				return MapError(err)
			}
		}
		return nil
	}

	var err error
	if beginner, ok := s.db.(store.TxBeginner); ok {
		err = store.RunInTransaction(ctx, beginner, func(ctx context.Context, tx *sql.Tx) error {
			return write(ctx, tx)
		})
	} else {
		err = write(ctx, s.db)
	}
	if err != nil {
		return store.NewStoreError("corpus", "replace", key.String(), err)
	}

	s.logger.InfoContext(ctx, "replaced corpus partition",
		slog.String("key", key.String()),
		slog.Bool("master", master),
		slog.Int("cards", len(prepared)))
	return nil
}

func encodeLists(c domain.Card) (tags, items []byte, err error) {
	t := c.Tags
	if t == nil {
		t = []string{}
	}
	it := c.Items
	if it == nil {
		it = []domain.BundleItem{}
	}
	if tags, err = json.Marshal(t); err != nil {
		return nil, nil, err
	}
	if items, err = json.Marshal(it); err != nil {
		return nil, nil, err
	}
	return tags, items, nil
}
