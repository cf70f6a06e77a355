package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/cognicore/kotoba/pkg/kotoba/ingest"
	"github.com/cognicore/kotoba/pkg/kotoba/rules"
)

// Config defaults
const (
	DefaultDict      = "ipa"
	DefaultDatabase  = "kotoba.db"
	DefaultOutput    = string(ModeText)
	DefaultNormalize = string(ingest.NormalizeNFC)
	DefaultWorkers   = 4
)

// Config holds all CLI configuration options.
type Config struct {
	Dict           string   `koanf:"dict"`
	Profile        string   `koanf:"profile"`
	ProfileFiles   []string `koanf:"profile_files"`
	AbsorbSymbols  bool     `koanf:"absorb_symbols"`
	MergeCompounds bool     `koanf:"merge_compounds"`
	Normalize      string   `koanf:"normalize"`
	Stoplist       string   `koanf:"stoplist"`
	Database       string   `koanf:"database"`
	Workers        int      `koanf:"workers"`
	Verbose        bool     `koanf:"verbose"`
	Output         string   `koanf:"output"`
}

// RuleOptions returns the rule-table options. An empty profile follows the
// analyzer dictionary.
func (c *Config) RuleOptions() rules.Options {
	profile := c.Profile
	if profile == "" {
		profile = profileForDict(c.Dict)
	}
	return rules.Options{
		Profile:        profile,
		AbsorbSymbols:  c.AbsorbSymbols,
		MergeCompounds: c.MergeCompounds,
	}
}

func profileForDict(dict string) string {
	switch strings.ToLower(dict) {
	case "uni", "unidic":
		return "unidic"
	default:
		return "ipadic"
	}
}

// Validate checks option values that koanf cannot.
func (c *Config) Validate() error {
	if _, err := ParseMode(c.Output); err != nil {
		return err
	}
	if _, err := ingest.ParseNormalization(c.Normalize); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// findConfigFile finds the config file to use.
// Priority: explicit path > kotoba.yaml > kotoba.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"kotoba.yaml", "kotoba.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// It returns the config and the config file used, if any.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	// 1. Load defaults
	defaults := rules.DefaultOptions()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dict":            DefaultDict,
		"profile":         "",
		"absorb_symbols":  defaults.AbsorbSymbols,
		"merge_compounds": defaults.MergeCompounds,
		"normalize":       DefaultNormalize,
		"database":        DefaultDatabase,
		"workers":         DefaultWorkers,
		"verbose":         false,
		"output":          DefaultOutput,
	}, "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Load environment variables (KOTOBA_ prefix)
	// Transform: KOTOBA_MERGE_COMPOUNDS -> merge_compounds
	if err := k.Load(env.Provider("KOTOBA_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "KOTOBA_"))
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "profile_file":
				return "profile_files", posflag.FlagVal(flags, f)
			case "db":
				return "database", posflag.FlagVal(flags, f)
			case "config":
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, used, nil
}
