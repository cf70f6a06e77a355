// Package stream exposes the merge engine as lazy word streams, batched by
// sentence, and merges independent sequences in parallel.
package stream

import (
	"context"
	"iter"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/kotoba/pkg/kotoba/merge"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
	"github.com/cognicore/kotoba/pkg/kotoba/word"
)

// Sentence is a run of words closed by a sentence boundary or the end of
// the sequence.
type Sentence struct {
	Index int // position in the sequence's sentences
	Words []word.Word
	Start int
	End   int
}

// Text returns the sentence surface.
func (s Sentence) Text() string {
	var b strings.Builder
	for _, w := range s.Words {
		b.WriteString(w.Surface)
	}
	return b.String()
}

// Join renders the sentence with sep between words, skipping space words.
func (s Sentence) Join(sep string) string {
	parts := make([]string, 0, len(s.Words))
	for _, w := range s.Words {
		if isSpace(w) {
			continue
		}
		parts = append(parts, w.Surface)
	}
	return strings.Join(parts, sep)
}

// Stream produces words and sentences from token sequences.
type Stream struct {
	engine *merge.Engine
}

// New creates a stream over engine.
func New(engine *merge.Engine) *Stream {
	return &Stream{engine: engine}
}

// Words returns the lazy word sequence for tokens.
func (s *Stream) Words(tokens []morph.Token) (iter.Seq[word.Word], error) {
	return s.engine.Words(tokens)
}

// Sentences returns the lazy sentence sequence for tokens.
func (s *Stream) Sentences(tokens []morph.Token) (iter.Seq[Sentence], error) {
	words, err := s.engine.Words(tokens)
	if err != nil {
		return nil, err
	}
	return Sentences(words), nil
}

// Sentences groups words into sentences. A sentence closes after a word
// ending in a full stop or a line break.
func Sentences(words iter.Seq[word.Word]) iter.Seq[Sentence] {
	return func(yield func(Sentence) bool) {
		var (
			current []word.Word
			index   int
		)
		flush := func() bool {
			if len(current) == 0 {
				return true
			}
			sent := Sentence{
				Index: index,
				Words: current,
				Start: current[0].Start,
				End:   current[len(current)-1].End,
			}
			index++
			current = nil
			return yield(sent)
		}

		for w := range words {
			current = append(current, w)
			if Boundary(w) && !flush() {
				return
			}
		}
		flush()
	}
}

// Boundary reports whether w closes a sentence.
func Boundary(w word.Word) bool {
	last := w.Tokens[len(w.Tokens)-1]
	if last.Category.Is(morph.Symbol, morph.Period) {
		return true
	}
	return isSpace(w) && strings.Contains(w.Surface, "\n")
}

func isSpace(w word.Word) bool {
	return w.Len == 1 && w.Tokens[0].Category.Is(morph.Symbol, morph.Space)
}

// MergeAll merges independent sequences concurrently, at most workers at a
// time (unbounded when workers <= 0). Results keep the input order. The
// first error cancels the remaining work.
func MergeAll(ctx context.Context, engine *merge.Engine, seqs [][]morph.Token, workers int) ([][]word.Word, error) {
	results := make([][]word.Word, len(seqs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, tokens := range seqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			words, err := engine.Merge(tokens)
			if err != nil {
				return err
			}
			results[i] = words
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
