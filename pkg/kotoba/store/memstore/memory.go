package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]store.Doc
	urlIndex map[string]string
	stops    []string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		docs:     make(map[string]store.Doc),
		urlIndex: make(map[string]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDoc inserts or updates a document, keyed by URL.
func (s *Store) UpsertDoc(ctx context.Context, d store.Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.URL == "" {
		return fmt.Errorf("doc URL is required: %w", internalerr.ErrInvalidInput)
	}

	if existingID, ok := s.urlIndex[d.URL]; ok {
		d.ID = existingID
	} else {
		if d.ID == "" {
			return fmt.Errorf("doc ID is required: %w", internalerr.ErrInvalidInput)
		}
		if _, taken := s.docs[d.ID]; taken {
			return fmt.Errorf("doc ID %s: %w", d.ID, internalerr.ErrDuplicate)
		}
		s.urlIndex[d.URL] = d.ID
	}

	entries := d.Entries[:0:0]
	for _, e := range d.Entries {
		if e.Base != "" && e.Count > 0 {
			entries = append(entries, e)
		}
	}
	d.Entries = entries

	s.docs[d.ID] = copyDoc(d)
	return nil
}

// GetDoc returns a document by ID.
func (s *Store) GetDoc(ctx context.Context, id string) (store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.docs[id]; ok {
		return copyDoc(doc), nil
	}
	return store.Doc{}, fmt.Errorf("doc %s: %w", id, internalerr.ErrNotFound)
}

// GetDocByURL returns a document by URL.
func (s *Store) GetDocByURL(ctx context.Context, url string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.urlIndex[url]; ok {
		if doc, exists := s.docs[id]; exists {
			return copyDoc(doc), true, nil
		}
	}
	return store.Doc{}, false, nil
}

// DocsForBase returns documents containing base, most occurrences first.
func (s *Store) DocsForBase(ctx context.Context, base string, limit int) ([]store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	type scored struct {
		doc   store.Doc
		count int
	}

	var results []scored
	for _, doc := range s.docs {
		count := 0
		for _, e := range doc.Entries {
			if e.Base == base {
				count += e.Count
			}
		}
		if count > 0 {
			results = append(results, scored{doc: doc, count: count})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].count != results[j].count {
			return results[i].count > results[j].count
		}
		if !results[i].doc.IngestedAt.Equal(results[j].doc.IngestedAt) {
			return results[i].doc.IngestedAt.After(results[j].doc.IngestedAt)
		}
		return results[i].doc.ID < results[j].doc.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]store.Doc, len(results))
	for i, res := range results {
		out[i] = copyDoc(res.doc)
	}
	return out, nil
}

// DocCount returns the number of stored documents.
func (s *Store) DocCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

// TopEntries aggregates entries over all documents. A limit <= 0 returns
// every entry.
func (s *Store) TopEntries(ctx context.Context, filter store.Filter, limit int) ([]store.Vocab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct{ base, pos string }
	agg := make(map[key]*store.Vocab)
	for _, doc := range s.docs {
		for _, e := range doc.Entries {
			if !filter.Matches(e.POS) {
				continue
			}
			k := key{e.Base, e.POS}
			v, ok := agg[k]
			if !ok {
				v = &store.Vocab{Base: e.Base, POS: e.POS}
				agg[k] = v
			}
			v.Count += int64(e.Count)
			v.DF++
			if e.Reading > v.Reading {
				v.Reading = e.Reading
			}
		}
	}

	out := make([]store.Vocab, 0, len(agg))
	for _, v := range agg {
		out = append(out, *v)
	}
	store.SortVocab(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpsertStoplist replaces the persisted stoplist.
func (s *Store) UpsertStoplist(ctx context.Context, bases []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stops := make([]string, 0, len(bases))
	for _, b := range bases {
		if b != "" {
			stops = append(stops, b)
		}
	}
	slices.Sort(stops)
	s.stops = slices.Compact(stops)
	return nil
}

// Stoplist returns the persisted stoplist, sorted.
func (s *Store) Stoplist(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stops), nil
}

func copyDoc(d store.Doc) store.Doc {
	d.Entries = slices.Clone(d.Entries)
	store.SortEntries(d.Entries)
	return d
}
