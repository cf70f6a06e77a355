package store

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Store persists segmented documents and the vocabulary drawn from them
type Store interface {
	Close() error

	// Docs
	UpsertDoc(ctx context.Context, d Doc) error
	GetDoc(ctx context.Context, id string) (Doc, error)
	GetDocByURL(ctx context.Context, url string) (Doc, bool, error)
	DocsForBase(ctx context.Context, base string, limit int) ([]Doc, error)
	DocCount(ctx context.Context) (int64, error)

	// Vocabulary
	TopEntries(ctx context.Context, filter Filter, limit int) ([]Vocab, error)

	// Persisted stoplist
	UpsertStoplist(ctx context.Context, bases []string) error
	Stoplist(ctx context.Context) ([]string, error)
}

// Doc represents a stored document. ID is a ULID assigned on first
// ingestion and kept when the same URL is ingested again.
type Doc struct {
	ID          string
	URL         string
	Title       string
	Outlet      string
	PublishedAt time.Time
	IngestedAt  time.Time
	Entries     []Entry
}

// Entry counts one vocabulary item within a document. Base and POS
// identify the item.
type Entry struct {
	Base    string
	Reading string
	POS     string // coarse word class, e.g. "verb"
	Kind    string // merge kind of the first occurrence, e.g. "predicate-chain"
	Count   int
}

// Vocab aggregates an entry over the corpus
type Vocab struct {
	Base    string
	Reading string
	POS     string
	Count   int64 // occurrences
	DF      int64 // documents containing the entry
}

// Filter restricts vocabulary queries. An empty POS list matches all.
type Filter struct {
	POS []string
}

// Matches reports whether pos passes the filter.
func (f Filter) Matches(pos string) bool {
	return len(f.POS) == 0 || slices.Contains(f.POS, pos)
}

// SortVocab orders vocabulary by descending count, then DF, then base.
func SortVocab(v []Vocab) {
	slices.SortFunc(v, func(a, b Vocab) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		if a.DF != b.DF {
			if a.DF > b.DF {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Base, b.Base); c != 0 {
			return c
		}
		return strings.Compare(a.POS, b.POS)
	})
}

// SortEntries orders entries by descending count, then base and POS.
func SortEntries(e []Entry) {
	slices.SortFunc(e, func(a, b Entry) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Base, b.Base); c != 0 {
			return c
		}
		return strings.Compare(a.POS, b.POS)
	})
}
