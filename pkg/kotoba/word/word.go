// Package word assembles closed token spans into words.
package word

import (
	"fmt"
	"strings"

	"github.com/cognicore/kotoba/pkg/kotoba/morph"
)

// Kind is how a word was formed. Higher values take precedence when a word
// was built by rules of several tiers.
type Kind uint8

const (
	KindSingle Kind = iota
	KindSymbolAbsorption
	KindNumeralCounter
	KindCompoundNoun
	KindPredicateChain
)

var kindNames = map[Kind]string{
	KindSingle:           "single",
	KindSymbolAbsorption: "symbol-absorption",
	KindNumeralCounter:   "numeral-counter",
	KindCompoundNoun:     "compound-noun",
	KindPredicateChain:   "predicate-chain",
}

func (k Kind) String() string { return kindNames[k] }

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindSingle, false
}

// Join records how token i+1 of a span attached to token i.
type Join struct {
	Kind Kind
	Rule string // rule ID
}

// Word is one or more contiguous tokens read as a single lexical item.
// A Word is never mutated after it is assembled.
type Word struct {
	// Tokens is a sub-slice of the source sequence. Its capacity is clipped
	// to its length, so appending to it never writes into the source.
	Tokens []morph.Token
	Index  int // index of the first token in the source sequence
	Len    int

	Surface            string
	Reading            string
	ReadingKnown       bool
	Pronunciation      string
	PronunciationKnown bool
	BaseForm           string

	Kind    Kind
	POS     POS
	Grammar Grammar
	Rules   []string // IDs of the rules that joined the tokens, in order

	Start int
	End   int
}

// Category returns the word-level category label: the kind for merged
// words, or the sole token's category for a single token.
func (w Word) Category() string {
	if w.Kind == KindSingle && len(w.Tokens) == 1 {
		return w.Tokens[0].Category.String()
	}
	return w.Kind.String()
}

func (w Word) String() string {
	return fmt.Sprintf("%s[%d:%d](%s)", w.Surface, w.Start, w.End, w.Category())
}

// Assembler builds Words from closed spans.
type Assembler struct {
	profile *morph.Profile
}

// NewAssembler creates an assembler for the given profile.
func NewAssembler(p *morph.Profile) *Assembler {
	return &Assembler{profile: p}
}

// Assemble builds the word for tokens, which must be non-empty and start at
// index in the source sequence. joins must hold exactly len(tokens)-1
// entries.
func (a *Assembler) Assemble(tokens []morph.Token, index int, joins []Join) Word {
	if len(tokens) == 0 || len(joins) != len(tokens)-1 {
		panic(fmt.Sprintf("word: assemble %d tokens with %d joins", len(tokens), len(joins)))
	}

	w := Word{
		Tokens: tokens[:len(tokens):len(tokens)],
		Index:  index,
		Len:    len(tokens),
		Start:  tokens[0].Start,
		End:    tokens[len(tokens)-1].End,
	}

	var surface, reading, pron strings.Builder
	w.ReadingKnown, w.PronunciationKnown = true, true
	for _, tok := range tokens {
		surface.WriteString(tok.Surface)
		if tok.Reading == "" {
			w.ReadingKnown = false
		}
		if tok.Pronunciation == "" {
			w.PronunciationKnown = false
		}
		reading.WriteString(tok.Reading)
		pron.WriteString(tok.Pronunciation)
	}
	w.Surface = surface.String()
	if w.ReadingKnown {
		w.Reading = reading.String()
	}
	if w.PronunciationKnown {
		w.Pronunciation = pron.String()
	}

	excluded := make([]bool, len(tokens))
	for i, j := range joins {
		w.Rules = append(w.Rules, j.Rule)
		if j.Kind > w.Kind {
			w.Kind = j.Kind
		}
		if j.Kind == KindSymbolAbsorption {
			if tokens[i+1].Category.Major == morph.Symbol {
				excluded[i+1] = true
			} else if tokens[i].Category.Major == morph.Symbol {
				excluded[i] = true
			}
		}
	}

	lexical := make([]morph.Token, 0, len(tokens))
	for i, tok := range tokens {
		if !excluded[i] {
			lexical = append(lexical, tok)
		}
	}

	w.BaseForm = a.baseForm(w.Kind, lexical)
	w.POS, w.Grammar = a.classify(w.Kind, lexical)
	return w
}

// baseForm reconstructs the citation form. Predicate chains keep the
// surfaces up to the last citation-bearing token and end in its base form;
// the other merged kinds read as they are written.
func (a *Assembler) baseForm(kind Kind, lexical []morph.Token) string {
	if len(lexical) == 1 {
		return lexical[0].Lemma()
	}
	if kind != KindPredicateChain {
		return concatSurfaces(lexical)
	}

	last := 0
	for i := 1; i < len(lexical); i++ {
		if a.citationBearing(lexical[i]) {
			last = i
		}
	}
	return concatSurfaces(lexical[:last]) + lexical[last].Lemma()
}

// citationBearing reports whether a non-head token of a predicate chain
// contributes its own dictionary form. Past, polite, copula and volitional
// auxiliaries are purely inflectional and drop out.
func (a *Assembler) citationBearing(tok morph.Token) bool {
	if !tok.Inflecting() {
		return false
	}
	switch tok.Conjugation.Type {
	case morph.ConjTa, morph.ConjMasu, morph.ConjDesu, morph.ConjDa:
		return false
	case morph.ConjInvariant:
		return !a.profile.IsVolitional(tok.Lemma())
	}
	return true
}

func concatSurfaces(tokens []morph.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Surface)
	}
	return b.String()
}
