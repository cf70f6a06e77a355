package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/kotoba/pkg/kotoba/morph"
)

type tok struct {
	surface, reading, base string
	cat                    morph.Category
	conj                   morph.Conjugation
}

func span(defs ...tok) []morph.Token {
	var out []morph.Token
	offset := 0
	for _, s := range defs {
		base := s.base
		if base == "" {
			base = s.surface
		}
		out = append(out, morph.Token{
			Surface:       s.surface,
			Start:         offset,
			End:           offset + len(s.surface),
			Reading:       s.reading,
			Pronunciation: s.reading,
			BaseForm:      base,
			Category:      s.cat,
			Conjugation:   s.conj,
		})
		offset += len(s.surface)
	}
	return out
}

func joins(kind Kind, rules ...string) []Join {
	out := make([]Join, len(rules))
	for i, r := range rules {
		out[i] = Join{Kind: kind, Rule: r}
	}
	return out
}

var (
	verbIndep = morph.Category{Major: morph.Verb, Sub1: morph.Independent}
	verbSufx  = morph.Category{Major: morph.Verb, Sub1: morph.Suffix}
	verbNonIn = morph.Category{Major: morph.Verb, Sub1: morph.NonIndependent}
	auxVerb   = morph.Category{Major: morph.AuxVerb}
	nounCom   = morph.Category{Major: morph.Noun, Sub1: morph.Common}
	nounProp  = morph.Category{Major: morph.Noun, Sub1: morph.Proper, Sub2: morph.PersonName, Sub3: morph.Surname}
	nounNum   = morph.Category{Major: morph.Noun, Sub1: morph.Numeral}
	counter   = morph.Category{Major: morph.Noun, Sub1: morph.Suffix, Sub2: morph.Counter}
	suffixCom = morph.Category{Major: morph.Noun, Sub1: morph.Suffix, Sub2: morph.Common}
	suffixSa  = morph.Category{Major: morph.Noun, Sub1: morph.Suffix, Sub2: morph.Special}
	suffixPer = morph.Category{Major: morph.Noun, Sub1: morph.Suffix, Sub2: morph.PersonName}
	sahen     = morph.Category{Major: morph.Noun, Sub1: morph.SahenConnection}
	adjStem   = morph.Category{Major: morph.Noun, Sub1: morph.AdjectivalNounStem}
	particleC = morph.Category{Major: morph.Particle, Sub1: morph.Conjunctive}
	period    = morph.Category{Major: morph.Symbol, Sub1: morph.Period}
	bracketO  = morph.Category{Major: morph.Symbol, Sub1: morph.BracketOpen}
	bracketC  = morph.Category{Major: morph.Symbol, Sub1: morph.BracketClose}

	cont  = morph.Conjugation{Type: morph.ConjOther, Form: morph.FormContinuative}
	past  = morph.Conjugation{Type: morph.ConjTa, Form: morph.FormBase}
	masu  = morph.Conjugation{Type: morph.ConjMasu, Form: morph.FormContinuative}
	suru  = morph.Conjugation{Type: morph.ConjSahenSuru, Form: morph.FormContinuative}
	naAtt = morph.Conjugation{Type: morph.ConjDa, Form: morph.FormAttributive}
	vol   = morph.Conjugation{Type: morph.ConjInvariant, Form: morph.FormBase}
)

func TestAssembleSingle(t *testing.T) {
	a := NewAssembler(morph.IPADIC)
	toks := span(tok{surface: "猫", reading: "ネコ", cat: nounCom})

	w := a.Assemble(toks, 4, nil)
	assert.Equal(t, "猫", w.Surface)
	assert.Equal(t, "ネコ", w.Reading)
	assert.True(t, w.ReadingKnown)
	assert.Equal(t, "猫", w.BaseForm)
	assert.Equal(t, KindSingle, w.Kind)
	assert.Equal(t, "noun/common", w.Category())
	assert.Equal(t, POSNoun, w.POS)
	assert.Equal(t, 4, w.Index)
	assert.Equal(t, 1, w.Len)
	assert.Empty(t, w.Rules)
}

func TestAssemblePredicateChain(t *testing.T) {
	a := NewAssembler(morph.IPADIC)

	tests := []struct {
		name  string
		toks  []morph.Token
		rules []string
		base  string
		pos   POS
	}{
		{
			name: "causative passive past",
			toks: span(
				tok{surface: "食べ", reading: "タベ", base: "食べる", cat: verbIndep, conj: cont},
				tok{surface: "させ", reading: "サセ", base: "させる", cat: verbSufx, conj: cont},
				tok{surface: "られ", reading: "ラレ", base: "られる", cat: verbSufx, conj: cont},
				tok{surface: "た", reading: "タ", base: "た", cat: auxVerb, conj: past},
			),
			rules: []string{"P03", "P03", "P01"},
			base:  "食べさせられる",
			pos:   POSVerb,
		},
		{
			name: "progressive polite",
			toks: span(
				tok{surface: "食べ", reading: "タベ", base: "食べる", cat: verbIndep, conj: cont},
				tok{surface: "て", reading: "テ", cat: particleC},
				tok{surface: "い", reading: "イ", base: "いる", cat: verbNonIn, conj: cont},
				tok{surface: "ます", reading: "マス", cat: auxVerb, conj: masu},
			),
			rules: []string{"P02", "P03", "P01"},
			base:  "食べている",
			pos:   POSVerb,
		},
		{
			name: "volitional",
			toks: span(
				tok{surface: "行こ", reading: "イコ", base: "行く", cat: verbIndep, conj: cont},
				tok{surface: "う", reading: "ウ", cat: auxVerb, conj: vol},
			),
			rules: []string{"P01"},
			base:  "行く",
			pos:   POSVerb,
		},
		{
			name: "sahen suru",
			toks: span(
				tok{surface: "勉強", reading: "ベンキョウ", cat: sahen},
				tok{surface: "し", reading: "シ", base: "する", cat: verbIndep, conj: suru},
				tok{surface: "た", reading: "タ", cat: auxVerb, conj: past},
			),
			rules: []string{"P04", "P01"},
			base:  "勉強する",
			pos:   POSVerb,
		},
		{
			name: "adjectival na",
			toks: span(
				tok{surface: "静か", reading: "シズカ", cat: adjStem},
				tok{surface: "な", reading: "ナ", base: "だ", cat: auxVerb, conj: naAtt},
			),
			rules: []string{"P05"},
			base:  "静か",
			pos:   POSAdjective,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.Assemble(tt.toks, 0, joins(KindPredicateChain, tt.rules...))
			assert.Equal(t, KindPredicateChain, w.Kind)
			assert.Equal(t, "predicate-chain", w.Category())
			assert.Equal(t, tt.base, w.BaseForm)
			assert.Equal(t, tt.pos, w.POS)
			assert.Equal(t, tt.rules, w.Rules)
		})
	}
}

func TestAssembleCompoundAndNumeral(t *testing.T) {
	a := NewAssembler(morph.IPADIC)

	w := a.Assemble(span(
		tok{surface: "野球", reading: "ヤキュウ", cat: nounCom},
		tok{surface: "場", reading: "ジョウ", cat: suffixCom},
	), 0, joins(KindCompoundNoun, "C02"))
	assert.Equal(t, "野球場", w.Surface)
	assert.Equal(t, "野球場", w.BaseForm)
	assert.Equal(t, "ヤキュウジョウ", w.Reading)
	assert.Equal(t, "compound-noun", w.Category())
	assert.Equal(t, POSNoun, w.POS)

	w = a.Assemble(span(
		tok{surface: "田中", reading: "タナカ", cat: nounProp},
		tok{surface: "さん", reading: "サン", cat: suffixPer},
	), 0, joins(KindCompoundNoun, "C02"))
	assert.Equal(t, POSProperNoun, w.POS)

	w = a.Assemble(span(
		tok{surface: "高", reading: "タカ", base: "高い", cat: morph.Category{Major: morph.Adjective, Sub1: morph.Independent}},
		tok{surface: "さ", reading: "サ", cat: suffixSa},
	), 0, joins(KindCompoundNoun, "C02"))
	assert.Equal(t, POSNoun, w.POS)
	assert.Equal(t, "高さ", w.BaseForm)

	w = a.Assemble(span(
		tok{surface: "三", reading: "サン", cat: nounNum},
		tok{surface: "匹", reading: "ヒキ", cat: counter},
	), 0, joins(KindNumeralCounter, "N02"))
	assert.Equal(t, "三匹", w.BaseForm)
	assert.Equal(t, "numeral-counter", w.Category())
	assert.Equal(t, POSNumber, w.POS)
}

func TestAssembleUnknownReading(t *testing.T) {
	a := NewAssembler(morph.IPADIC)
	w := a.Assemble(span(
		tok{surface: "猫", reading: "ネコ", cat: nounCom},
		tok{surface: "ズ", reading: "", cat: nounCom},
	), 0, joins(KindCompoundNoun, "C04"))
	assert.False(t, w.ReadingKnown)
	assert.Empty(t, w.Reading)
	assert.False(t, w.PronunciationKnown)
	assert.Empty(t, w.Pronunciation)
	assert.Equal(t, "猫ズ", w.Surface)
}

func TestAssembleSymbolAbsorption(t *testing.T) {
	a := NewAssembler(morph.IPADIC)
	toks := span(
		tok{surface: "「", reading: "「", cat: bracketO},
		tok{surface: "食べ", reading: "タベ", base: "食べる", cat: verbIndep, conj: cont},
		tok{surface: "た", reading: "タ", cat: auxVerb, conj: past},
		tok{surface: "」", reading: "」", cat: bracketC},
		tok{surface: "。", reading: "。", cat: period},
	)
	w := a.Assemble(toks, 0, []Join{
		{Kind: KindSymbolAbsorption, Rule: "S02"},
		{Kind: KindPredicateChain, Rule: "P01"},
		{Kind: KindSymbolAbsorption, Rule: "S01"},
		{Kind: KindSymbolAbsorption, Rule: "S01"},
	})
	assert.Equal(t, KindPredicateChain, w.Kind)
	assert.Equal(t, "「食べた」。", w.Surface)
	assert.Equal(t, "食べる", w.BaseForm)
	assert.Equal(t, POSVerb, w.POS)
	assert.Equal(t, 0, w.Start)
	assert.Equal(t, len("「食べた」。"), w.End)

	w = a.Assemble(span(
		tok{surface: "猫", reading: "ネコ", cat: nounCom},
		tok{surface: "。", reading: "。", cat: period},
	), 0, joins(KindSymbolAbsorption, "S01"))
	assert.Equal(t, "symbol-absorption", w.Category())
	assert.Equal(t, "猫", w.BaseForm)
	assert.Equal(t, POSNoun, w.POS)
}

func TestAssembleClipsCapacity(t *testing.T) {
	a := NewAssembler(morph.IPADIC)
	source := span(
		tok{surface: "三", reading: "サン", cat: nounNum},
		tok{surface: "匹", reading: "ヒキ", cat: counter},
		tok{surface: "猫", reading: "ネコ", cat: nounCom},
	)
	w := a.Assemble(source[:2], 0, joins(KindNumeralCounter, "N02"))
	require.Equal(t, 2, cap(w.Tokens))

	grown := append(w.Tokens, morph.Token{Surface: "x"})
	assert.Equal(t, "x", grown[2].Surface)
	assert.Equal(t, "猫", source[2].Surface)
}

func TestAssemblePanicsOnBadJoins(t *testing.T) {
	a := NewAssembler(morph.IPADIC)
	assert.Panics(t, func() { a.Assemble(nil, 0, nil) })
	assert.Panics(t, func() {
		a.Assemble(span(tok{surface: "猫", cat: nounCom}), 0, joins(KindCompoundNoun, "C04"))
	})
}

func TestParseNames(t *testing.T) {
	k, ok := ParseKind("compound-noun")
	assert.True(t, ok)
	assert.Equal(t, KindCompoundNoun, k)

	p, ok := ParsePOS("proper-noun")
	assert.True(t, ok)
	assert.Equal(t, POSProperNoun, p)

	_, ok = ParsePOS("gerund")
	assert.False(t, ok)
	assert.Equal(t, "auxiliary", GrammarAuxiliary.String())
}
