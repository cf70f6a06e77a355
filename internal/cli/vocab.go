package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/kotoba/pkg/kotoba/stoplist"
	"github.com/cognicore/kotoba/pkg/kotoba/store"
)

func newVocabCommand() *cobra.Command {
	var (
		pos          []string
		limit        int
		suggest      bool
		apply        bool
		dfPercent    float64
		functionalDF float64
		minDocs      int64
	)

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Show the most frequent vocabulary",
		Long: `Show the most frequent base forms of the ingested corpus, most uses first.
Stopped base forms are left out.

With --suggest-stops, list base forms that look like stop words instead;
--apply adds them to the persisted stoplist.`,
		Example: `  kotoba vocab --pos noun,verb --limit 20
  kotoba vocab --suggest-stops --apply`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if apply && !suggest {
				return WrapExitError(ExitCommandError, "vocab", fmt.Errorf("--apply requires --suggest-stops"))
			}

			k, err := openKotoba(ctx, nil)
			if err != nil {
				return err
			}
			defer k.Close()

			if suggest {
				candidates, err := k.SuggestStops(ctx, stoplist.Thresholds{
					DFPercent:           dfPercent,
					FunctionalDFPercent: functionalDF,
					MinDocs:             minDocs,
				})
				if err != nil {
					return err
				}
				if apply {
					if err := k.ApplyStops(ctx, candidates); err != nil {
						return err
					}
					GetLogger(ctx).Info("stoplist updated", "added", len(candidates), "total", k.Stoplist().Len())
				}
				return GetRenderer(ctx).Candidates(candidates)
			}

			entries, err := k.Vocabulary(ctx, store.Filter{POS: pos}, limit)
			if err != nil {
				return err
			}
			return GetRenderer(ctx).Vocab(entries)
		},
	}

	defaults := stoplist.DefaultThresholds()
	cmd.Flags().StringSliceVar(&pos, "pos", nil, "only these word classes (e.g. noun,verb)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum entries (0 = all)")
	cmd.Flags().BoolVar(&suggest, "suggest-stops", false, "suggest stop words from document frequency")
	cmd.Flags().BoolVar(&apply, "apply", false, "persist the suggested stop words")
	cmd.Flags().Float64Var(&dfPercent, "df-percent", defaults.DFPercent, "document share that makes a base form a stop word")
	cmd.Flags().Float64Var(&functionalDF, "functional-df-percent", defaults.FunctionalDFPercent, "document share for functional word classes")
	cmd.Flags().Int64Var(&minDocs, "min-docs", defaults.MinDocs, "minimum corpus size for suggestions")
	return cmd
}

func newOccurrencesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "occurrences <base>",
		Short: "List the documents that use a base form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			k, err := openKotoba(ctx, nil)
			if err != nil {
				return err
			}
			defer k.Close()

			docs, err := k.Occurrences(ctx, args[0], limit)
			if err != nil {
				return err
			}
			return GetRenderer(ctx).Docs(args[0], docs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum documents")
	return cmd
}
