package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/kotoba/internal/corpus"
	"github.com/cognicore/kotoba/pkg/kotoba/ingest"
	"github.com/cognicore/kotoba/pkg/kotoba/kagome"
)

func newSegmentCommand() *cobra.Command {
	var (
		file string
		html bool
	)

	cmd := &cobra.Command{
		Use:   "segment [text...]",
		Short: "Segment text into words and sentences",
		Long: `Segment Japanese text with the embedded kagome analyzer and merge the
tokens into words.

Text comes from the arguments, from --file, or from standard input.`,
		Example: `  kotoba segment 猫が3匹いる。
  kotoba segment --file article.txt -o table
  curl -s https://example.jp/ | kotoba segment --html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)

			text, err := readText(cmd, args, file)
			if err != nil {
				return err
			}
			if html {
				text = corpus.ExtractText(text)
			}

			pipeline, err := newPipeline(cmd, cfg)
			if err != nil {
				return err
			}
			doc, err := pipeline.Process(text)
			if err != nil {
				return err
			}
			return GetRenderer(ctx).Sentences(doc.Sentences)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file (- for stdin)")
	cmd.Flags().BoolVar(&html, "html", false, "input is HTML; segment its visible text")
	return cmd
}

// newPipeline pairs the configured kagome dictionary with the rule table.
func newPipeline(cmd *cobra.Command, cfg *Config) (*ingest.Pipeline, error) {
	analyzer, err := kagome.New(cfg.Dict)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "create analyzer", err)
	}
	comp, err := loadComponents(cmd.Context())
	if err != nil {
		return nil, err
	}
	norm, err := ingest.ParseNormalization(cfg.Normalize)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "normalization", err)
	}
	GetLogger(cmd.Context()).Debug("pipeline ready",
		"dict", analyzer.Dict(),
		"profile", comp.Profile.Name,
		"normalize", norm)
	return ingest.NewPipeline(analyzer, comp.Engine, norm), nil
}

// readText returns the joined arguments, the named file or standard input.
func readText(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		if file != "" {
			return "", WrapExitError(ExitCommandError, "read input", fmt.Errorf("text arguments and --file are exclusive"))
		}
		return strings.Join(args, " "), nil
	}
	data, err := readSource(cmd, file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readSource reads path, or standard input when path is empty or "-".
func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read input", err)
	}
	return data, nil
}
