package cli

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cognicore/kotoba/pkg/kotoba/mecab"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
	"github.com/cognicore/kotoba/pkg/kotoba/stream"
)

func newMecabCommand() *cobra.Command {
	var (
		text     string
		textFile string
	)

	cmd := &cobra.Command{
		Use:   "mecab [dump]",
		Short: "Merge the tokens of a MeCab dump",
		Long: `Merge the tokens of a MeCab dump (surface<TAB>features lines, EOS after
each sentence) into words.

Without source text every EOS-terminated sequence is merged on its own,
in parallel. With --text or --text-file the dump is aligned to the text,
so offsets index it and skipped whitespace is kept.

Use --profile unidic for dumps produced with a UniDic dictionary.`,
		Example: `  echo 猫が3匹いる。 | mecab | kotoba mecab
  kotoba mecab dump.txt --text-file article.txt -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			dump, err := readSource(cmd, path)
			if err != nil {
				return err
			}
			raw, err := mecab.Parse(bytes.NewReader(dump))
			if err != nil {
				return WrapExitError(ExitCommandError, "parse dump", err)
			}

			comp, err := loadComponents(ctx)
			if err != nil {
				return err
			}

			if textFile != "" {
				if text != "" {
					return WrapExitError(ExitCommandError, "read text", fmt.Errorf("--text and --text-file are exclusive"))
				}
				data, err := readSource(cmd, textFile)
				if err != nil {
					return err
				}
				text = string(data)
			}

			var seqs [][]morph.Token
			if text != "" {
				tokens, err := mecab.Align(text, slices.Concat(raw...), comp.Profile)
				if err != nil {
					return WrapExitError(ExitCommandError, "align dump", err)
				}
				seqs = append(seqs, tokens)
			} else {
				for _, sentence := range raw {
					tokens, err := mecab.Prepare(sentence, comp.Profile)
					if err != nil {
						return WrapExitError(ExitCommandError, "convert dump", err)
					}
					seqs = append(seqs, tokens)
				}
			}

			results, err := stream.MergeAll(ctx, comp.Engine, seqs, cfg.Workers)
			if err != nil {
				return err
			}

			var sentences []stream.Sentence
			for _, words := range results {
				for s := range stream.Sentences(slices.Values(words)) {
					s.Index = len(sentences)
					sentences = append(sentences, s)
				}
			}
			GetLogger(ctx).Debug("merged dump",
				"sequences", len(seqs),
				"sentences", len(sentences),
				"profile", comp.Profile.Name)
			return GetRenderer(ctx).Sentences(sentences)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "source text the dump was produced from")
	cmd.Flags().StringVar(&textFile, "text-file", "", "read the source text from file")
	return cmd
}
