// Package merge regroups a validated token sequence into words.
//
// The engine makes one left-to-right pass. For each pair of the last
// buffered token and the next unconsumed token it asks the rule table
// whether to extend the word in progress. Lookahead rules peek at most
// rules.MaxLookahead tokens and consume them together with the candidate
// only when every peeked token matches. A closed word is never reopened.
package merge

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/cognicore/kotoba/pkg/kotoba/morph"
	"github.com/cognicore/kotoba/pkg/kotoba/rules"
	"github.com/cognicore/kotoba/pkg/kotoba/word"
)

// Engine merges token sequences with one rule table. An Engine holds no
// per-sequence state and is safe for concurrent use.
type Engine struct {
	table  *rules.Table
	asm    *word.Assembler
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug traces of fallbacks and
// lookahead rollbacks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine over table.
func New(table *rules.Table, opts ...Option) *Engine {
	e := &Engine{
		table:  table,
		asm:    word.NewAssembler(table.Profile()),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the rule table the engine consults.
func (e *Engine) Table() *rules.Table { return e.table }

// Words validates tokens and returns a lazy word sequence over them.
// Validation covers the whole sequence before the first word is produced,
// so a structural error never comes with partial output. Each range over
// the returned sequence restarts from the first token and yields the same
// words.
func (e *Engine) Words(tokens []morph.Token) (iter.Seq[word.Word], error) {
	if err := morph.Validate(tokens); err != nil {
		return nil, err
	}
	return func(yield func(word.Word) bool) {
		s := newScanner(e, tokens)
		for {
			w, ok := s.next()
			if !ok || !yield(w) {
				return
			}
		}
	}, nil
}

// Merge is Words collected into a slice.
func (e *Engine) Merge(tokens []morph.Token) ([]word.Word, error) {
	seq, err := e.Words(tokens)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}
