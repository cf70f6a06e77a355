package cli

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/kotoba/internal/corpus"
	"github.com/cognicore/kotoba/pkg/kotoba"
	"github.com/cognicore/kotoba/pkg/kotoba/config"
	"github.com/cognicore/kotoba/pkg/kotoba/ingest"
	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/store/sqlite"
)

func newIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <corpus.jsonl>...",
		Short: "Segment a JSONL corpus and index its vocabulary",
		Long: `Segment every document of one or more JSONL files and store their
vocabulary in the SQLite database.

Each line holds one document: {"url", "title", "outlet", "published_at",
"text"} or "html" in place of "text". Ingesting a URL again replaces its
entries.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)
			logger := GetLogger(ctx)

			var items []corpus.Item
			for _, path := range args {
				loaded, err := corpus.LoadFromJSONL(path, logger)
				if err != nil {
					return WrapExitError(ExitCommandError, "load corpus", err)
				}
				items = append(items, loaded...)
			}

			pipeline, err := newPipeline(cmd, cfg)
			if err != nil {
				return err
			}
			k, err := openKotoba(ctx, pipeline)
			if err != nil {
				return err
			}
			defer k.Close()

			var ingested, skipped atomic.Int64
			g, gctx := errgroup.WithContext(ctx)
			if cfg.Workers > 0 {
				g.SetLimit(cfg.Workers)
			}
			for _, item := range items {
				g.Go(func() error {
					_, err := k.Ingest(gctx, kotoba.IngestDoc{
						URL:         item.URL,
						Title:       item.Title,
						Outlet:      item.Outlet,
						PublishedAt: item.PublishedAt,
						BodyText:    item.Text(),
					})
					if errors.Is(err, internalerr.ErrInvalidInput) {
						logger.Warn("skipping document", "url", item.URL, "error", err)
						skipped.Add(1)
						return nil
					}
					if err != nil {
						return err
					}
					ingested.Add(1)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			logger.Info("ingest complete", "ingested", ingested.Load(), "skipped", skipped.Load(), "db", cfg.Database)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ingested %d documents (%d skipped)\n", ingested.Load(), skipped.Load())
			return err
		},
	}
	return cmd
}

// openKotoba opens the configured database with the persisted stoplist
// merged into the configured one. pipeline may be nil for query commands.
func openKotoba(ctx context.Context, pipeline *ingest.Pipeline) (*kotoba.Kotoba, error) {
	cfg := GetConfig(ctx)
	logger := GetLogger(ctx)

	st, err := sqlite.OpenSQLite(ctx, cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}

	stops, err := config.LoadStoplistManager(cfg.Stoplist)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "load stoplist", err)
	}

	k := kotoba.New(kotoba.Options{
		Store:    st,
		Pipeline: pipeline,
		Stoplist: stops,
		Logger:   logger,
	})
	if err := k.RestoreStops(ctx); err != nil {
		k.Close()
		return nil, err
	}
	return k, nil
}
