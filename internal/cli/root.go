// Package cli provides the command-line interface for kotoba.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/kotoba/pkg/kotoba/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // processing failed
	ExitCommandError = 2 // bad flags, unreadable input or configuration
)

// ExitError carries the exit code a command failure should produce.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

type configKey struct{}

type loggerKey struct{}

type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "kotoba",
		Short: "kotoba - Japanese word segmentation and vocabulary",
		Long: `kotoba merges morphological analyzer tokens into natural words,
groups them into sentences and builds a vocabulary index over a corpus.

Tokens come from the embedded kagome analyzer (segment, ingest) or from a
MeCab dump (mecab).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}
			mode, _ := ParseMode(cfg.Output)
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			ctx = context.WithValue(ctx, rendererKey{}, NewRenderer(cmd.OutOrStdout(), mode))
			cmd.SetContext(ctx)

			if used != "" {
				logger.Debug("using config file", "path", used)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./kotoba.yaml)")
	flags.String("dict", "", "kagome dictionary (ipa|uni)")
	flags.String("profile", "", "tag-scheme profile for the rule table (default: follows --dict)")
	flags.StringSlice("profile-file", nil, "extra tag-scheme profile YAML files")
	flags.Bool("absorb-symbols", false, "attach punctuation to the preceding word")
	flags.Bool("merge-compounds", true, "merge compound nouns")
	flags.String("normalize", "", "Unicode normalization (none|nfc|nfkc|width)")
	flags.String("stoplist", "", "stoplist YAML file")
	flags.String("db", "", "SQLite database path")
	flags.Int("workers", DefaultWorkers, "parallel workers for batch commands (0 = unbounded)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("output", "o", "", "output format (text|json|table|pretty)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, len(ValidModes))
		for i, m := range ValidModes {
			modes[i] = string(m)
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("dict", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ipa", "uni"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newSegmentCommand())
	rootCmd.AddCommand(newMecabCommand())
	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newVocabCommand())
	rootCmd.AddCommand(newOccurrencesCommand())
	rootCmd.AddCommand(newRulesCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Dict:           DefaultDict,
		MergeCompounds: true,
		Normalize:      DefaultNormalize,
		Database:       DefaultDatabase,
		Workers:        DefaultWorkers,
		Output:         DefaultOutput,
	}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*Renderer); ok {
		return r
	}
	return NewRenderer(os.Stdout, ModeText)
}

// loadComponents builds the rule table, merge engine and stoplist from the
// command configuration.
func loadComponents(ctx context.Context) (*config.Components, error) {
	cfg := GetConfig(ctx)
	loader := &config.Loader{
		StoplistPath: cfg.Stoplist,
		ProfilePaths: cfg.ProfileFiles,
		Options:      cfg.RuleOptions(),
		Logger:       GetLogger(ctx),
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load configuration", err)
	}
	return comp, nil
}
