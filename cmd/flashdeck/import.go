package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/flashloop/internal/config"
	"github.com/phrazzld/flashloop/internal/platform/corpusfile"
	"github.com/phrazzld/flashloop/internal/platform/logger"
	"github.com/phrazzld/flashloop/internal/platform/postgres"
	"github.com/phrazzld/flashloop/internal/store"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var (
		dir         string
		databaseURL string
		migrate     bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load every corpus file in a directory into Postgres",
		Long: `Import scans --dir (and its data/ subdirectory) for corpus files named
{domain}_L{level}, {domain}_master or english_{category} and replaces the
matching Postgres partition with each file's cards. Flags default to the
server configuration (config.yaml and FLASH_* environment variables).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				dir = cfg.Corpus.Dir
			}
			if databaseURL == "" {
				databaseURL = cfg.Corpus.DatabaseURL
			}
			if databaseURL == "" {
				return fmt.Errorf("no database URL: pass --database-url or set FLASH_CORPUS_DATABASE_URL")
			}

			log := logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel)
			ctx := cmd.Context()

			db, err := postgres.Open(ctx, databaseURL)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := db.Close(); cerr != nil {
					log.Error("error closing database connection", slog.String("error", cerr.Error()))
				}
			}()

			if migrate {
				if err := postgres.Migrate(ctx, db, "up", log); err != nil {
					return err
				}
			}

			src := corpusfile.New(dir, log)
			return runImport(ctx, src, postgres.NewCorpusStore(db, log), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "data", "Corpus directory")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres DSN")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply migrations before importing")
	return cmd
}

// runImport copies every partition found in src into dst.
func runImport(ctx context.Context, src *corpusfile.Store, dst store.CorpusWriter, out io.Writer) error {
	partitions, err := src.Partitions(ctx)
	if err != nil {
		return err
	}
	if len(partitions) == 0 {
		fmt.Fprintf(out, "no corpus files found in %s\n", src.Dir())
		return nil
	}

	total := 0
	for _, p := range partitions {
		cards, err := src.LoadPartition(ctx, p)
		if err != nil {
			return fmt.Errorf("load %s: %w", p.Path, err)
		}
		if err := dst.ReplacePartition(ctx, p.Key, p.Master, cards); err != nil {
			return fmt.Errorf("import %s: %w", p.Path, err)
		}
		name := p.Key.String()
		if p.Master {
			name = p.Key.Domain + " master"
		}
		fmt.Fprintf(out, "imported %-20s %4d cards\n", name, len(cards))
		total += len(cards)
	}
	fmt.Fprintf(out, "imported %d cards from %d partitions\n", total, len(partitions))
	return nil
}
