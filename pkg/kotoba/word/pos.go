package word

import "github.com/cognicore/kotoba/pkg/kotoba/morph"

// POS is the coarse part of speech of a whole word.
type POS uint8

const (
	POSUnknown POS = iota
	POSNoun
	POSProperNoun
	POSPronoun
	POSAdjective
	POSAdverb
	POSDeterminer
	POSPostposition
	POSVerb
	POSSuffix
	POSPrefix
	POSConjunction
	POSInterjection
	POSNumber
	POSSymbol
	POSOther
)

var posNames = map[POS]string{
	POSUnknown:      "unknown",
	POSNoun:         "noun",
	POSProperNoun:   "proper-noun",
	POSPronoun:      "pronoun",
	POSAdjective:    "adjective",
	POSAdverb:       "adverb",
	POSDeterminer:   "determiner",
	POSPostposition: "postposition",
	POSVerb:         "verb",
	POSSuffix:       "suffix",
	POSPrefix:       "prefix",
	POSConjunction:  "conjunction",
	POSInterjection: "interjection",
	POSNumber:       "number",
	POSSymbol:       "symbol",
	POSOther:        "other",
}

func (p POS) String() string {
	if name, ok := posNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePOS resolves a coarse part-of-speech name.
func ParsePOS(s string) (POS, bool) {
	for p, name := range posNames {
		if name == s {
			return p, true
		}
	}
	return POSUnknown, false
}

// Grammar marks words that carry a grammatical rather than lexical role.
type Grammar uint8

const (
	GrammarNone Grammar = iota
	GrammarAuxiliary
	GrammarNominal
)

func (g Grammar) String() string {
	switch g {
	case GrammarAuxiliary:
		return "auxiliary"
	case GrammarNominal:
		return "nominal"
	default:
		return ""
	}
}

// classify derives the coarse part of speech from the word kind and its
// lexical tokens.
func (a *Assembler) classify(kind Kind, lexical []morph.Token) (POS, Grammar) {
	head := lexical[0]
	switch kind {
	case KindNumeralCounter:
		return POSNumber, GrammarNone
	case KindCompoundNoun:
		return compoundPOS(lexical), GrammarNone
	case KindPredicateChain:
		return chainPOS(lexical)
	}
	return tokenPOS(head)
}

func compoundPOS(lexical []morph.Token) POS {
	proper := true
	for _, tok := range lexical {
		c := tok.Category
		if c.Is(morph.Noun, morph.Suffix) {
			// the nominalizing さ turns whatever precedes it into a noun
			if c.Sub2 == morph.Special && tok.Lemma() == "さ" {
				return POSNoun
			}
			continue
		}
		if c.Major == morph.Prefix {
			continue
		}
		if !c.Is(morph.Noun, morph.Proper) {
			proper = false
		}
	}
	if proper {
		return POSProperNoun
	}
	return POSNoun
}

// chainPOS classifies a predicate chain. A chain led by nouns takes its
// class from the last noun and the first token after it.
func chainPOS(lexical []morph.Token) (POS, Grammar) {
	k := 0
	for k < len(lexical) && (lexical[k].Category.Major == morph.Noun || lexical[k].Category.Major == morph.Prefix) {
		k++
	}
	if k == 0 || k == len(lexical) {
		return tokenPOS(lexical[0])
	}
	head, next := lexical[k-1], lexical[k]
	switch {
	case head.Category.Has(morph.AuxVerbStem):
		if next.Category.Major == morph.Particle {
			return POSAdverb, GrammarNone
		}
		return POSVerb, GrammarAuxiliary
	case next.Conjugation.Type == morph.ConjSahenSuru:
		return POSVerb, GrammarNone
	case next.Conjugation.Type == morph.ConjDa, next.Conjugation.Type == morph.ConjNai:
		return POSAdjective, GrammarNone
	case next.Category.Major == morph.Particle:
		return POSAdverb, GrammarNone
	}
	return tokenPOS(head)
}

func tokenPOS(tok morph.Token) (POS, Grammar) {
	c := tok.Category
	switch c.Major {
	case morph.Noun:
		switch c.Sub1 {
		case morph.Proper:
			return POSProperNoun, GrammarNone
		case morph.Pronoun:
			return POSPronoun, GrammarNone
		case morph.Numeral:
			return POSNumber, GrammarNone
		case morph.Suffix:
			return POSSuffix, GrammarNone
		case morph.ConjunctionLike:
			return POSConjunction, GrammarNone
		case morph.VerbNonIndependentLike:
			return POSVerb, GrammarNominal
		}
		return POSNoun, GrammarNone
	case morph.Prefix:
		return POSPrefix, GrammarNone
	case morph.Verb:
		return POSVerb, GrammarNone
	case morph.Adjective:
		return POSAdjective, GrammarNone
	case morph.Adverb:
		return POSAdverb, GrammarNone
	case morph.Adnominal:
		return POSDeterminer, GrammarNone
	case morph.Conjunction:
		return POSConjunction, GrammarNone
	case morph.Particle:
		return POSPostposition, GrammarNone
	case morph.AuxVerb:
		switch tok.Conjugation.Type {
		case morph.ConjDa, morph.ConjDesu:
			if tok.Surface != "な" {
				return POSVerb, GrammarNone
			}
		}
		return POSPostposition, GrammarNone
	case morph.Interjection, morph.Filler:
		return POSInterjection, GrammarNone
	case morph.Symbol:
		return POSSymbol, GrammarNone
	case morph.Other:
		return POSOther, GrammarNone
	}
	return POSUnknown, GrammarNone
}
