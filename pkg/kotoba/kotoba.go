// Package kotoba segments Japanese text into words and keeps a vocabulary
// of their base forms.
package kotoba

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/kotoba/pkg/kotoba/ingest"
	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/stoplist"
	"github.com/cognicore/kotoba/pkg/kotoba/store"
	"github.com/cognicore/kotoba/pkg/kotoba/word"
)

// Kotoba is the main vocabulary engine facade
type Kotoba struct {
	store    store.Store
	pipeline *ingest.Pipeline
	stops    *stoplist.Manager
	logger   *slog.Logger
	now      func() time.Time

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Kotoba instance
type Options struct {
	Store    store.Store
	Pipeline *ingest.Pipeline
	Stoplist *stoplist.Manager // optional
	Logger   *slog.Logger      // optional
	Now      func() time.Time  // optional, for tests
}

// New creates a Kotoba instance with the given dependencies
func New(opts Options) *Kotoba {
	k := &Kotoba{
		store:    opts.Store,
		pipeline: opts.Pipeline,
		stops:    opts.Stoplist,
		logger:   opts.Logger,
		now:      opts.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	if k.stops == nil {
		k.stops = stoplist.NewManager(nil)
	}
	if k.logger == nil {
		k.logger = slog.New(slog.DiscardHandler)
	}
	if k.now == nil {
		k.now = time.Now
	}
	return k
}

// Close cleanly shuts down the Kotoba instance
func (k *Kotoba) Close() error {
	return k.store.Close()
}

// Stoplist returns the stoplist consulted during ingestion.
func (k *Kotoba) Stoplist() *stoplist.Manager { return k.stops }

// IngestDoc represents a document to be ingested
type IngestDoc struct {
	URL         string
	Title       string
	Outlet      string
	PublishedAt time.Time
	BodyText    string
}

// Segment runs text through the pipeline without storing anything.
func (k *Kotoba) Segment(text string) (ingest.ProcessedDoc, error) {
	return k.pipeline.Process(text)
}

// Ingest segments a document and stores its vocabulary. Ingesting a URL
// again replaces its entries and keeps its ID.
func (k *Kotoba) Ingest(ctx context.Context, d IngestDoc) (store.Doc, error) {
	doc := ingest.Doc{
		URL:         d.URL,
		Title:       d.Title,
		Outlet:      d.Outlet,
		PublishedAt: d.PublishedAt,
		BodyText:    d.BodyText,
	}
	if err := doc.Validate(); err != nil {
		return store.Doc{}, fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
	}

	existing, found, err := k.store.GetDocByURL(ctx, d.URL)
	if err != nil {
		return store.Doc{}, err
	}

	processed, err := k.pipeline.Process(d.BodyText)
	if err != nil {
		return store.Doc{}, fmt.Errorf("process %s: %w", d.URL, err)
	}

	sd := store.Doc{
		URL:         d.URL,
		Title:       d.Title,
		Outlet:      d.Outlet,
		PublishedAt: d.PublishedAt,
		IngestedAt:  k.now().UTC(),
		Entries:     k.entries(processed.Words),
	}
	if found {
		sd.ID = existing.ID
	} else {
		sd.ID = k.newID(sd.IngestedAt)
	}

	if err := k.store.UpsertDoc(ctx, sd); err != nil {
		return store.Doc{}, err
	}

	k.logger.Debug("ingested document",
		"url", d.URL,
		"id", sd.ID,
		"words", len(processed.Words),
		"entries", len(sd.Entries),
		"replaced", found)
	return sd, nil
}

func (k *Kotoba) newID(t time.Time) string {
	k.idMu.Lock()
	defer k.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), k.entropy).String()
}

// entries aggregates countable words by base form and part of speech.
func (k *Kotoba) entries(words []word.Word) []store.Entry {
	type key struct{ base, pos string }
	index := make(map[key]int)
	var out []store.Entry
	for _, w := range words {
		if !countable(w) || k.stops.IsStop(w.BaseForm) {
			continue
		}
		kk := key{w.BaseForm, w.POS.String()}
		if i, ok := index[kk]; ok {
			out[i].Count++
			if out[i].Reading == "" && w.ReadingKnown {
				out[i].Reading = w.Reading
			}
			continue
		}
		e := store.Entry{Base: w.BaseForm, POS: kk.pos, Kind: w.Kind.String(), Count: 1}
		if w.ReadingKnown {
			e.Reading = w.Reading
		}
		index[kk] = len(out)
		out = append(out, e)
	}
	store.SortEntries(out)
	return out
}

func countable(w word.Word) bool {
	if w.BaseForm == "" {
		return false
	}
	switch w.POS {
	case word.POSSymbol, word.POSPostposition:
		return false
	}
	return true
}

// Vocabulary returns the most frequent entries, leaving out base forms
// stopped since they were ingested. A limit <= 0 returns everything.
func (k *Kotoba) Vocabulary(ctx context.Context, filter store.Filter, limit int) ([]store.Vocab, error) {
	all, err := k.store.TopEntries(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, v := range all {
		if k.stops.IsStop(v.Base) {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Occurrences returns the documents that use base, most uses first.
func (k *Kotoba) Occurrences(ctx context.Context, base string, limit int) ([]store.Doc, error) {
	return k.store.DocsForBase(ctx, base, limit)
}

// functionalPOS are closed word classes that carry little topical meaning.
var functionalPOS = map[string]bool{
	word.POSDeterminer.String():   true,
	word.POSConjunction.String():  true,
	word.POSInterjection.String(): true,
	word.POSSuffix.String():       true,
	word.POSPrefix.String():       true,
	word.POSOther.String():        true,
}

// SuggestStops proposes base forms to stop from the corpus statistics.
func (k *Kotoba) SuggestStops(ctx context.Context, thresholds stoplist.Thresholds) ([]stoplist.Candidate, error) {
	total, err := k.store.DocCount(ctx)
	if err != nil {
		return nil, err
	}
	vocab, err := k.store.TopEntries(ctx, store.Filter{}, 0)
	if err != nil {
		return nil, err
	}

	// DF per base form; a base counted under several classes takes the
	// largest DF and is functional only if every class is.
	byBase := make(map[string]*stoplist.Stats)
	var order []string
	for _, v := range vocab {
		s, ok := byBase[v.Base]
		if !ok {
			s = &stoplist.Stats{Base: v.Base, Functional: true}
			byBase[v.Base] = s
			order = append(order, v.Base)
		}
		s.DF = max(s.DF, v.DF)
		s.Functional = s.Functional && functionalPOS[v.POS]
	}

	stats := make([]stoplist.Stats, 0, len(order))
	for _, base := range order {
		s := byBase[base]
		if total > 0 {
			s.DFPercent = float64(s.DF) / float64(total) * 100
		}
		stats = append(stats, *s)
	}
	return k.stops.SuggestCandidates(stats, total, thresholds), nil
}

// ApplyStops adds candidates to the stoplist and persists the whole list.
func (k *Kotoba) ApplyStops(ctx context.Context, candidates []stoplist.Candidate) error {
	for _, c := range candidates {
		k.stops.Add(c.Base, c.Reason)
	}
	return k.store.UpsertStoplist(ctx, k.stops.All())
}

// RestoreStops loads the persisted stoplist into the in-memory one.
func (k *Kotoba) RestoreStops(ctx context.Context) error {
	bases, err := k.store.Stoplist(ctx)
	if err != nil {
		return err
	}
	for _, b := range bases {
		if !k.stops.IsStop(b) {
			k.stops.Add(b, stoplist.Reason{})
		}
	}
	return nil
}
