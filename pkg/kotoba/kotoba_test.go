package kotoba

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/kotoba/internal/testutil"
	"github.com/cognicore/kotoba/pkg/kotoba/ingest"
	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/mecab"
	"github.com/cognicore/kotoba/pkg/kotoba/merge"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
	"github.com/cognicore/kotoba/pkg/kotoba/rules"
	"github.com/cognicore/kotoba/pkg/kotoba/stoplist"
	"github.com/cognicore/kotoba/pkg/kotoba/store"
	"github.com/cognicore/kotoba/pkg/kotoba/store/memstore"
)

// dumps maps each test text to its analyzer output.
var dumps = map[string]string{
	"猫が来た。": `猫	名詞,一般,*,*,*,*,猫,ネコ,ネコ
が	助詞,格助詞,一般,*,*,*,が,ガ,ガ
来	動詞,自立,*,*,カ変・来ル,連用形,来る,キ,キ
た	助動詞,*,*,*,特殊・タ,基本形,た,タ,タ
。	記号,句点,*,*,*,*,。,。,。
EOS
`,
	"猫が3匹いる。": `猫	名詞,一般,*,*,*,*,猫,ネコ,ネコ
が	助詞,格助詞,一般,*,*,*,が,ガ,ガ
3	名詞,数,*,*,*,*,*
匹	名詞,接尾,助数詞,*,*,*,匹,ヒキ,ヒキ
いる	動詞,自立,*,*,一段,基本形,いる,イル,イル
。	記号,句点,*,*,*,*,。,。,。
EOS
`,
}

type mapAnalyzer struct{}

func (mapAnalyzer) Analyze(text string) ([]morph.Token, error) {
	d, ok := dumps[text]
	if !ok {
		return nil, fmt.Errorf("no dump for %q: %w", text, internalerr.ErrInvalidInput)
	}
	sentences, err := mecab.Parse(strings.NewReader(d))
	if err != nil {
		return nil, err
	}
	var raw []mecab.RawToken
	for _, s := range sentences {
		raw = append(raw, s...)
	}
	return mecab.Align(text, raw, morph.IPADIC)
}

func newKotoba(t *testing.T, st store.Store, stops []string) *Kotoba {
	t.Helper()
	engine := merge.New(rules.MustNew(rules.DefaultOptions()))
	return New(Options{
		Store:    st,
		Pipeline: ingest.NewPipeline(mapAnalyzer{}, engine, ingest.NormalizeNone),
		Stoplist: stoplist.NewManager(stops),
		Logger:   testutil.NewTestLogger(t),
		Now:      func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func TestIngestStoresVocabulary(t *testing.T) {
	ctx := context.Background()
	k := newKotoba(t, memstore.New(), nil)

	doc, err := k.Ingest(ctx, IngestDoc{URL: "https://example.com/1", Title: "猫", BodyText: "猫が来た。"})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("Expected a document ID")
	}

	// particles and symbols are not counted
	if len(doc.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %+v", doc.Entries)
	}
	var bases []string
	for _, e := range doc.Entries {
		bases = append(bases, e.Base+"/"+e.POS)
	}
	if got := strings.Join(bases, " "); got != "来る/verb 猫/noun" {
		t.Errorf("Entries = %q", got)
	}
	if doc.Entries[0].Kind != "predicate-chain" || doc.Entries[0].Reading != "キタ" {
		t.Errorf("Unexpected verb entry %+v", doc.Entries[0])
	}

	if _, err := k.Ingest(ctx, IngestDoc{URL: "https://example.com/2", BodyText: "猫が3匹いる。"}); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	vocab, err := k.Vocabulary(ctx, store.Filter{}, 0)
	if err != nil {
		t.Fatalf("Vocabulary failed: %v", err)
	}
	var got []string
	for _, v := range vocab {
		got = append(got, fmt.Sprintf("%s:%d", v.Base, v.Count))
	}
	if want := "猫:2 3匹:1 いる:1 来る:1"; strings.Join(got, " ") != want {
		t.Errorf("Vocabulary = %q, want %q", strings.Join(got, " "), want)
	}

	nums, _ := k.Vocabulary(ctx, store.Filter{POS: []string{"number"}}, 5)
	if len(nums) != 1 || nums[0].Base != "3匹" {
		t.Errorf("Unexpected numbers %+v", nums)
	}

	docs, err := k.Occurrences(ctx, "猫", 10)
	if err != nil || len(docs) != 2 {
		t.Errorf("Occurrences = %d docs, err %v", len(docs), err)
	}
}

func TestIngestReplacesByURL(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	k := newKotoba(t, st, nil)

	first, err := k.Ingest(ctx, IngestDoc{URL: "https://example.com/1", BodyText: "猫が来た。"})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	second, err := k.Ingest(ctx, IngestDoc{URL: "https://example.com/1", BodyText: "猫が3匹いる。"})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("ID changed on re-ingest: %s -> %s", first.ID, second.ID)
	}
	n, _ := st.DocCount(ctx)
	if n != 1 {
		t.Errorf("Expected 1 doc, got %d", n)
	}
}

func TestIngestIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	k := newKotoba(t, memstore.New(), nil)

	a, _ := k.Ingest(ctx, IngestDoc{URL: "https://example.com/1", BodyText: "猫が来た。"})
	b, _ := k.Ingest(ctx, IngestDoc{URL: "https://example.com/2", BodyText: "猫が来た。"})
	if a.ID == b.ID || a.ID > b.ID {
		t.Errorf("Expected increasing IDs, got %s then %s", a.ID, b.ID)
	}
}

func TestIngestSkipsStoplist(t *testing.T) {
	ctx := context.Background()
	k := newKotoba(t, memstore.New(), []string{"いる"})

	doc, err := k.Ingest(ctx, IngestDoc{URL: "https://example.com/1", BodyText: "猫が3匹いる。"})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	for _, e := range doc.Entries {
		if e.Base == "いる" {
			t.Errorf("Stopped base stored: %+v", e)
		}
	}
}

func TestIngestErrors(t *testing.T) {
	ctx := context.Background()
	k := newKotoba(t, memstore.New(), nil)

	if _, err := k.Ingest(ctx, IngestDoc{BodyText: "猫が来た。"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for missing URL, got %v", err)
	}
	if _, err := k.Ingest(ctx, IngestDoc{URL: "https://example.com/1", BodyText: "未知"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected analyzer error, got %v", err)
	}
}

func TestSegment(t *testing.T) {
	k := newKotoba(t, memstore.New(), nil)

	result, err := k.Segment("猫が3匹いる。")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if got := result.Sentences[0].Join(" "); got != "猫 が 3匹 いる 。" {
		t.Errorf("Segment = %q", got)
	}
}

func TestSuggestApplyRestoreStops(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	k := newKotoba(t, st, nil)

	_, _ = k.Ingest(ctx, IngestDoc{URL: "https://example.com/1", BodyText: "猫が来た。"})
	_, _ = k.Ingest(ctx, IngestDoc{URL: "https://example.com/2", BodyText: "猫が3匹いる。"})

	candidates, err := k.SuggestStops(ctx, stoplist.Thresholds{DFPercent: 90, FunctionalDFPercent: 90, MinDocs: 1})
	if err != nil {
		t.Fatalf("SuggestStops failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Base != "猫" {
		t.Fatalf("Unexpected candidates %+v", candidates)
	}

	if err := k.ApplyStops(ctx, candidates); err != nil {
		t.Fatalf("ApplyStops failed: %v", err)
	}
	vocab, _ := k.Vocabulary(ctx, store.Filter{}, 0)
	for _, v := range vocab {
		if v.Base == "猫" {
			t.Error("Stopped base still in vocabulary")
		}
	}

	fresh := newKotoba(t, st, nil)
	if err := fresh.RestoreStops(ctx); err != nil {
		t.Fatalf("RestoreStops failed: %v", err)
	}
	if !fresh.Stoplist().IsStop("猫") {
		t.Error("Persisted stoplist not restored")
	}
}
