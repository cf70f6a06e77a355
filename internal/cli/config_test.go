package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "kotoba.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, used, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, used)

	assert.Equal(t, DefaultDict, cfg.Dict)
	assert.Equal(t, DefaultNormalize, cfg.Normalize)
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.True(t, cfg.MergeCompounds)
	assert.False(t, cfg.AbsorbSymbols)

	opts := cfg.RuleOptions()
	assert.Equal(t, "ipadic", opts.Profile)
	assert.True(t, opts.MergeCompounds)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, `dict: uni
absorb_symbols: true
output: json
workers: 2
profile_files:
  - extra.yaml
`)

	// found in the working directory
	cfg, used, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "kotoba.yaml", used)

	assert.Equal(t, "uni", cfg.Dict)
	assert.True(t, cfg.AbsorbSymbols)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{"extra.yaml"}, cfg.ProfileFiles)
	assert.Equal(t, "unidic", cfg.RuleOptions().Profile)
}

func TestLoadConfigExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "profile: ipadic\ndict: uni\n")

	cfg, used, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	// an explicit profile wins over the dictionary default
	assert.Equal(t, "ipadic", cfg.RuleOptions().Profile)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := LoadConfig("/nonexistent/kotoba.yaml", nil)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "output: json\nworkers: 2\n")
	t.Setenv("KOTOBA_OUTPUT", "table")
	t.Setenv("KOTOBA_WORKERS", "8")
	t.Setenv("KOTOBA_MERGE_COMPOUNDS", "false")

	cfg, _, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, 8, cfg.Workers)
	assert.False(t, cfg.MergeCompounds)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KOTOBA_OUTPUT", "table")
	t.Setenv("KOTOBA_DATABASE", "env.db")

	flags := NewRootCmd().PersistentFlags()
	require.NoError(t, flags.Parse([]string{
		"--output", "json",
		"--db", "flag.db",
		"--profile", "unidic",
		"--profile-file", "a.yaml,b.yaml",
		"--merge-compounds=false",
		"-v",
	}))

	cfg, _, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "flag.db", cfg.Database)
	assert.Equal(t, "unidic", cfg.Profile)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, cfg.ProfileFiles)
	assert.False(t, cfg.MergeCompounds)
	assert.True(t, cfg.Verbose)
	// unset flags keep lower layers
	assert.Equal(t, DefaultDict, cfg.Dict)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"output", "KOTOBA_OUTPUT", "xml"},
		{"normalize", "KOTOBA_NORMALIZE", "nfd"},
		{"workers", "KOTOBA_WORKERS", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)
			_, _, err := LoadConfig("", nil)
			assert.Error(t, err)
		})
	}
}
