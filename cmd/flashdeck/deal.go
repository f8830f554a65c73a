package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/flashloop/internal/domain"
	"github.com/phrazzld/flashloop/internal/domain/selection"
	"github.com/phrazzld/flashloop/internal/platform/corpusfile"
	"github.com/phrazzld/flashloop/internal/session"
	"github.com/spf13/cobra"
)

type dealOptions struct {
	dir    string
	seed   string
	round  int
	seen   []string
	asJSON bool
	opts   session.Options
}

func dealCmd() *cobra.Command {
	var o dealOptions

	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Print the deck a round would deal from a corpus directory",
		Long: `Deal loads one corpus partition from --dir and prints the deck the
session would show in the given round:
  round 1  corpus order (or uniform shuffle with --shuffle)
  round 2  uniform sample
  round 3  mixed weighted sample favouring unseen, core and applied cards
English corpora are always dealt at random, avoiding --seen keywords.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeal(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.dir, "dir", "d", "data", "Corpus directory")
	f.StringVar(&o.opts.Domain, "domain", "", "Corpus domain (e.g. python, english)")
	f.StringVar(&o.opts.Category, "category", domain.CategoryVocab, "English category")
	f.IntVarP(&o.opts.Level, "level", "l", 1, "Corpus level")
	f.IntVarP(&o.opts.Page, "page", "p", session.DefaultPage, "Cards per round")
	f.StringVarP(&o.seed, "seed", "s", "", "Seed (empty or non-numeric: derived from the clock)")
	f.IntVarP(&o.round, "round", "r", 1, "Round number (1, 2 or 3)")
	f.StringSliceVar(&o.seen, "seen", nil, "Keywords already seen this session")
	f.BoolVar(&o.opts.ShuffleRound1, "shuffle", false, "Shuffle round one")
	f.BoolVar(&o.opts.FillFromMaster, "fill", false, "Pad the corpus from the domain master list")
	f.BoolVarP(&o.asJSON, "json", "j", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func runDeal(cmd *cobra.Command, o dealOptions) error {
	if o.round < 1 || o.round > session.Rounds {
		return fmt.Errorf("round must be between 1 and %d, got %d", session.Rounds, o.round)
	}
	if err := o.opts.Validate(); err != nil {
		return err
	}

	selector, err := selection.NewDefaultService()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	dealer := session.Dealer{
		Store:    corpusfile.New(o.dir, logger),
		Selector: selector,
		Logger:   logger,
	}

	seed := session.TimeSeed(time.Now())
	if s := session.ParseSeed(o.seed); s != nil {
		seed = *s
	}

	deck, policy := dealer.Deal(cmd.Context(), o.opts, o.round, domain.NewSeenSet(o.seen...), seed)

	out := cmd.OutOrStdout()
	if o.asJSON {
		return writeDealJSON(out, o, policy, seed, deck)
	}

	fmt.Fprintf(out, "%s round %d: %s, seed %d, %d cards\n",
		o.opts.Key(), o.round, policy, seed, len(deck))
	for i, c := range deck {
		fmt.Fprintf(out, "%3d. %-24s %s\n", i+1, c.Keyword, c.Meaning)
	}
	return nil
}

func writeDealJSON(w io.Writer, o dealOptions, policy string, seed int64, deck domain.Deck) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Corpus string        `json:"corpus"`
		Round  int           `json:"round"`
		Policy string        `json:"policy"`
		Seed   int64         `json:"seed"`
		Cards  []domain.Card `json:"cards"`
	}{
		Corpus: o.opts.Key().String(),
		Round:  o.round,
		Policy: policy,
		Seed:   seed,
		Cards:  deck,
	})
}
