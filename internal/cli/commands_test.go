package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dump = `猫	名詞,一般,*,*,*,*,猫,ネコ,ネコ
が	助詞,格助詞,一般,*,*,*,が,ガ,ガ
3	名詞,数,*,*,*,*,*
匹	名詞,接尾,助数詞,*,*,*,匹,ヒキ,ヒキ
来	動詞,自立,*,*,カ変・来ル,連用形,来る,キ,キ
た	助動詞,*,*,*,特殊・タ,基本形,た,タ,タ
。	記号,句点,*,*,*,*,。,。,。
EOS
`

// execute runs the root command in a scratch directory.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"version", "segment", "mecab", "ingest", "vocab", "occurrences", "rules"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{
		"config", "dict", "profile", "profile-file", "absorb-symbols", "merge-compounds",
		"normalize", "stoplist", "db", "workers", "verbose", "output",
	} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kotoba v"+Version)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := execute(t, "", "rules", "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(io.EOF))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", io.EOF)))
}

func ruleTiers(t *testing.T, args ...string) map[string]int {
	t.Helper()
	out, err := execute(t, "", append([]string{"rules", "-o", "json"}, args...)...)
	require.NoError(t, err)

	var list []RuleJSON
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.NotEmpty(t, list)

	tiers := make(map[string]int)
	seen := make(map[string]bool)
	for _, r := range list {
		assert.False(t, seen[r.ID], "duplicate rule %s", r.ID)
		seen[r.ID] = true
		tiers[r.Tier]++
	}
	return tiers
}

func TestRulesCommandFollowsOptions(t *testing.T) {
	tiers := ruleTiers(t)
	assert.Positive(t, tiers["predicate-chain"])
	assert.Positive(t, tiers["numeral-counter"])
	assert.Positive(t, tiers["compound-noun"])
	assert.Zero(t, tiers["symbol-absorption"])

	tiers = ruleTiers(t, "--absorb-symbols", "--merge-compounds=false")
	assert.Positive(t, tiers["symbol-absorption"])
	assert.Zero(t, tiers["compound-noun"])
}

func TestRulesCommandText(t *testing.T) {
	out, err := execute(t, "", "rules")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.Len(t, strings.Split(line, "\t"), 4, line)
	}
}

func TestMecabCommandStdin(t *testing.T) {
	out, err := execute(t, dump, "mecab")
	require.NoError(t, err)
	assert.Equal(t, "猫 が 3匹 来た 。\n", out)
}

func TestMecabCommandSequencesInParallel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat(dump, 5)), 0o644))

	out, err := execute(t, "", "mecab", path, "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("猫 が 3匹 来た 。\n", 5), out)
}

func TestMecabCommandAlignedJSON(t *testing.T) {
	out, err := execute(t, dump, "mecab", "--text", "猫が3匹来た。", "-o", "json")
	require.NoError(t, err)

	var sentences []SentenceJSON
	require.NoError(t, json.Unmarshal([]byte(out), &sentences))
	require.Len(t, sentences, 1)
	assert.Equal(t, "猫が3匹来た。", sentences[0].Text)

	words := sentences[0].Words
	require.Len(t, words, 5)
	counter := words[2]
	assert.Equal(t, "3匹", counter.Surface)
	assert.Equal(t, "numeral-counter", counter.Kind)
	assert.Equal(t, []string{"3", "匹"}, counter.Tokens)
	assert.Equal(t, 6, counter.Start)
	assert.Equal(t, 10, counter.End)

	assert.Equal(t, "来た", words[3].Surface)
	assert.Equal(t, "来る", words[3].Base)
	assert.Equal(t, "predicate-chain", words[3].Kind)
}

func TestMecabCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"malformed dump", "猫\n", nil},
		{"unaligned text", dump, []string{"--text", "犬が3匹来た。"}},
		{"text sources", dump, []string{"--text", "x", "--text-file", "y"}},
		{"missing dump file", "", []string{"/nonexistent/dump.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, append([]string{"mecab"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestMecabCommandTableAndPretty(t *testing.T) {
	out, err := execute(t, dump, "mecab", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "3匹")
	assert.Contains(t, out, "numeral-counter")

	out, err = execute(t, dump, "mecab", "-o", "pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "来た")
}

func TestVocabApplyRequiresSuggest(t *testing.T) {
	_, err := execute(t, "", "vocab", "--apply", "--db", filepath.Join(t.TempDir(), "k.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVocabEmptyDatabase(t *testing.T) {
	out, err := execute(t, "", "vocab", "-o", "json", "--db", filepath.Join(t.TempDir(), "k.db"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestSegmentCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the kagome dictionary")
	}

	out, err := execute(t, "", "segment", "猫が来た。")
	require.NoError(t, err)
	assert.Equal(t, "猫 が 来た 。\n", out)

	out, err = execute(t, "<html><body><p>猫が来た。</p><script>x()</script></body></html>", "segment", "--html")
	require.NoError(t, err)
	assert.Equal(t, "猫 が 来た 。\n", out)

	_, err = execute(t, "", "segment", "猫", "--file", "x.txt")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestIngestVocabOccurrences(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the kagome dictionary")
	}

	dir := t.TempDir()
	db := filepath.Join(dir, "kotoba.db")
	corpusPath := filepath.Join(dir, "corpus.jsonl")
	require.NoError(t, os.WriteFile(corpusPath, []byte(strings.Join([]string{
		`{"url":"https://example.jp/1","title":"一","text":"猫が来た。"}`,
		`{"url":"https://example.jp/2","title":"二","html":"<p>猫がいる。</p>"}`,
		`{"url":"https://example.jp/3","title":"空","text":""}`,
		`not json`,
	}, "\n")), 0o644))

	out, err := execute(t, "", "ingest", corpusPath, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "ingested 2 documents (1 skipped)\n", out)

	out, err = execute(t, "", "vocab", "--db", db, "-o", "json")
	require.NoError(t, err)
	var vocab []VocabJSON
	require.NoError(t, json.Unmarshal([]byte(out), &vocab))
	require.NotEmpty(t, vocab)
	assert.Equal(t, VocabJSON{Base: "猫", Reading: "ネコ", POS: "noun", Count: 2, DF: 2}, vocab[0])

	out, err = execute(t, "", "occurrences", "猫", "--db", db, "-o", "json")
	require.NoError(t, err)
	var docs []DocJSON
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	assert.Len(t, docs, 2)

	// every document uses 猫, so it is suggested and then stopped
	out, err = execute(t, "", "vocab", "--db", db, "--suggest-stops", "--apply", "--min-docs", "1", "-o", "json")
	require.NoError(t, err)
	var candidates []CandidateJSON
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	var bases []string
	for _, c := range candidates {
		bases = append(bases, c.Base)
	}
	assert.Contains(t, bases, "猫")

	out, err = execute(t, "", "vocab", "--db", db)
	require.NoError(t, err)
	assert.NotContains(t, out, "猫")
}

func TestVocabSuggestStopsThresholdFlags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "k.db")
	out, err := execute(t, "", "vocab", "--db", db, "--suggest-stops",
		"--min-docs", "3", "--df-percent", "50", "--functional-df-percent", "20", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	cmd, _, err := NewRootCmd().Find([]string{"vocab"})
	require.NoError(t, err)
	minDocs, err := cmd.Flags().GetInt64("min-docs")
	require.NoError(t, err)
	assert.Equal(t, int64(10), minDocs)
}
