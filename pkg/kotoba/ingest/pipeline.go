package ingest

import (
	"fmt"
	"slices"

	"github.com/cognicore/kotoba/pkg/kotoba/merge"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
	"github.com/cognicore/kotoba/pkg/kotoba/stream"
	"github.com/cognicore/kotoba/pkg/kotoba/word"
)

// Analyzer segments text into canonical tokens whose offsets index the
// text it was given.
type Analyzer interface {
	Analyze(text string) ([]morph.Token, error)
}

// Pipeline orchestrates the full ingestion flow:
// text → normalization → morphological analysis → word merge → sentences
type Pipeline struct {
	analyzer  Analyzer
	stream    *stream.Stream
	normalize Normalization
}

// NewPipeline creates an ingestion pipeline with the given components
func NewPipeline(analyzer Analyzer, engine *merge.Engine, normalize Normalization) *Pipeline {
	if normalize == "" {
		normalize = NormalizeNone
	}
	return &Pipeline{
		analyzer:  analyzer,
		stream:    stream.New(engine),
		normalize: normalize,
	}
}

// ProcessedDoc represents a document after ingestion processing. Token and
// word offsets index Text, the normalized input.
type ProcessedDoc struct {
	Text      string
	Tokens    []morph.Token
	Words     []word.Word
	Sentences []stream.Sentence
}

// Process runs text through the full ingestion pipeline
func (p *Pipeline) Process(text string) (ProcessedDoc, error) {
	// 1. Normalize
	text = p.normalize.Apply(text)

	// 2. Analyze
	tokens, err := p.analyzer.Analyze(text)
	if err != nil {
		return ProcessedDoc{}, fmt.Errorf("analyze: %w", err)
	}

	// 3. Merge and group into sentences
	seq, err := p.stream.Sentences(tokens)
	if err != nil {
		return ProcessedDoc{}, fmt.Errorf("merge: %w", err)
	}
	sentences := slices.Collect(seq)

	var words []word.Word
	for _, s := range sentences {
		words = append(words, s.Words...)
	}

	return ProcessedDoc{
		Text:      text,
		Tokens:    tokens,
		Words:     words,
		Sentences: sentences,
	}, nil
}
