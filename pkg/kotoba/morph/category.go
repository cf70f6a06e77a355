// Package morph defines the canonical token model shared by every stage of
// the merge pipeline: closed part-of-speech variants, conjugation pairs, the
// immutable Token, and the dictionary profiles that map an analyzer's raw
// tag strings onto those variants.
//
// Categories are tagged variants rather than strings. A tag the active
// profile does not know maps to MajorUnknown or SubUnknown, and rule
// evaluation treats such tokens as standalone words instead of failing.
package morph

import "strings"

// Major is the top-level part-of-speech class.
type Major uint8

// The zero value is MajorUnknown so that an unset category is never
// mistaken for a recognized one.
const (
	MajorUnknown Major = iota
	Noun
	Prefix
	Verb
	Adjective
	Adverb
	Adnominal
	Conjunction
	Particle
	AuxVerb
	Interjection
	Symbol
	Filler
	Other
)

var majorNames = map[Major]string{
	MajorUnknown: "unknown",
	Noun:         "noun",
	Prefix:       "prefix",
	Verb:         "verb",
	Adjective:    "adjective",
	Adverb:       "adverb",
	Adnominal:    "adnominal",
	Conjunction:  "conjunction",
	Particle:     "particle",
	AuxVerb:      "auxiliary-verb",
	Interjection: "interjection",
	Symbol:       "symbol",
	Filler:       "filler",
	Other:        "other",
}

// String returns the kebab-case name of the class.
func (m Major) String() string {
	if name, ok := majorNames[m]; ok {
		return name
	}
	return "unknown"
}

// Sub is a fine-grained sub-tag. The same enumeration serves all three
// sub-levels of a category.
type Sub uint8

const (
	SubNone Sub = iota // explicitly unset ("*")
	SubUnknown

	// noun sub-classes
	Common
	Proper
	Pronoun
	Numeral
	Suffix
	NonIndependent
	Special
	AdverbialPossible
	SahenConnection
	AdjectivalNounStem
	NaiAdjectiveStem
	AuxVerbStem
	ConjunctionLike
	VerbNonIndependentLike
	Quotation

	// predicate sub-classes
	Independent

	// particle sub-classes
	CaseMarking
	Binding
	Conjunctive
	SentenceFinal
	AdverbialParticle
	Parallel
	Interjective
	Adverbializer
	Adnominalizer
	AdverbialParallelFinal

	// symbol sub-classes
	Period
	Comma
	Space
	BracketOpen
	BracketClose
	Alphabet

	// prefix sub-classes
	NounConnection
	VerbConnection
	AdjectiveConnection
	NumeralConnection

	// adverb sub-classes
	ParticleConnection

	// third-level noun sub-tags
	Counter
	PersonName
	Organization
	Region
	Country
	Surname
	GivenName
	Citation
	Compound
	Contraction
)

var subNames = map[Sub]string{
	SubNone:                "",
	SubUnknown:             "unknown",
	Common:                 "common",
	Proper:                 "proper",
	Pronoun:                "pronoun",
	Numeral:                "numeral",
	Suffix:                 "suffix",
	NonIndependent:         "non-independent",
	Special:                "special",
	AdverbialPossible:      "adverbial-possible",
	SahenConnection:        "sahen",
	AdjectivalNounStem:     "adjectival-noun-stem",
	NaiAdjectiveStem:       "nai-adjective-stem",
	AuxVerbStem:            "auxiliary-stem",
	ConjunctionLike:        "conjunction-like",
	VerbNonIndependentLike: "verb-non-independent-like",
	Quotation:              "quotation",
	Independent:            "independent",
	CaseMarking:            "case-marking",
	Binding:                "binding",
	Conjunctive:            "conjunctive",
	SentenceFinal:          "sentence-final",
	AdverbialParticle:      "adverbial",
	Parallel:               "parallel",
	Interjective:           "interjective",
	Adverbializer:          "adverbializer",
	Adnominalizer:          "adnominalizer",
	AdverbialParallelFinal: "adverbial-parallel-final",
	Period:                 "period",
	Comma:                  "comma",
	Space:                  "space",
	BracketOpen:            "bracket-open",
	BracketClose:           "bracket-close",
	Alphabet:               "alphabet",
	NounConnection:         "noun-connection",
	VerbConnection:         "verb-connection",
	AdjectiveConnection:    "adjective-connection",
	NumeralConnection:      "numeral-connection",
	ParticleConnection:     "particle-connection",
	Counter:                "counter",
	PersonName:             "person-name",
	Organization:           "organization",
	Region:                 "region",
	Country:                "country",
	Surname:                "surname",
	GivenName:              "given-name",
	Citation:               "citation",
	Compound:               "compound",
	Contraction:            "contraction",
}

// String returns the kebab-case name of the sub-tag, or "" for SubNone.
func (s Sub) String() string {
	if name, ok := subNames[s]; ok {
		return name
	}
	return "unknown"
}

// Category is a hierarchical part-of-speech tag.
type Category struct {
	Major Major
	Sub1  Sub
	Sub2  Sub
	Sub3  Sub
}

// Recognized reports whether the rule table can reason about this category.
// Only the major class and the first sub-level take part: deeper levels are
// refinements and an unknown value there never disables a rule.
func (c Category) Recognized() bool {
	return c.Major != MajorUnknown && c.Sub1 != SubUnknown
}

// Is reports whether the category has the given major class and first sub-tag.
func (c Category) Is(m Major, s Sub) bool {
	return c.Major == m && c.Sub1 == s
}

// Has reports whether any sub-level carries s.
func (c Category) Has(s Sub) bool {
	return c.Sub1 == s || c.Sub2 == s || c.Sub3 == s
}

// String renders the category as "major/sub1/sub2/sub3", omitting unset levels.
func (c Category) String() string {
	parts := []string{c.Major.String()}
	for _, s := range []Sub{c.Sub1, c.Sub2, c.Sub3} {
		if s == SubNone {
			continue
		}
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "/")
}

// ConjType is the inflection type of an inflecting token.
type ConjType uint8

const (
	ConjNone ConjType = iota
	ConjTa
	ConjNai
	ConjTai
	ConjMasu
	ConjNu
	ConjDa
	ConjDesu
	ConjSahenSuru
	ConjInvariant
	ConjOther
)

var conjTypeNames = map[ConjType]string{
	ConjNone:      "",
	ConjTa:        "special-ta",
	ConjNai:       "special-nai",
	ConjTai:       "special-tai",
	ConjMasu:      "special-masu",
	ConjNu:        "special-nu",
	ConjDa:        "special-da",
	ConjDesu:      "special-desu",
	ConjSahenSuru: "sahen-suru",
	ConjInvariant: "invariant",
	ConjOther:     "other",
}

func (t ConjType) String() string { return conjTypeNames[t] }

// ConjForm is the inflection form of an inflecting token.
type ConjForm uint8

const (
	FormNone ConjForm = iota
	FormBase
	FormAttributive
	FormContinuative
	FormImperative
	FormImperativeI
	FormOther
)

var conjFormNames = map[ConjForm]string{
	FormNone:         "",
	FormBase:         "base",
	FormAttributive:  "attributive",
	FormContinuative: "continuative",
	FormImperative:   "imperative",
	FormImperativeI:  "imperative-i",
	FormOther:        "other",
}

func (f ConjForm) String() string { return conjFormNames[f] }

// Conjugation pairs an inflection type with an inflection form. The zero
// value means the token does not inflect.
type Conjugation struct {
	Type ConjType
	Form ConjForm
}

// IsZero reports whether no conjugation information is present.
func (c Conjugation) IsZero() bool {
	return c.Type == ConjNone && c.Form == FormNone
}

func (c Conjugation) String() string {
	if c.IsZero() {
		return ""
	}
	return c.Type.String() + ":" + c.Form.String()
}
