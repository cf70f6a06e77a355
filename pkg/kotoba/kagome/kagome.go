// Package kagome runs the kagome morphological analyzer and adapts its
// output to canonical tokens.
package kagome

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
)

// Dictionary names accepted by New.
const (
	DictIPA = "ipa"
	DictUni = "uni"
)

// Analyzer tokenizes text with one kagome dictionary. It is safe for
// concurrent use.
type Analyzer struct {
	tok     *tokenizer.Tokenizer
	profile *morph.Profile
	dict    string
}

// New creates an analyzer for the named dictionary ("ipa" or "uni"),
// paired with the matching tag-scheme profile.
func New(name string) (*Analyzer, error) {
	var (
		d       *dict.Dict
		profile *morph.Profile
	)
	switch strings.ToLower(name) {
	case DictIPA, "ipadic", "":
		d, profile = ipa.Dict(), morph.IPADIC
		name = DictIPA
	case DictUni, "unidic":
		d, profile = uni.Dict(), morph.UniDic
		name = DictUni
	default:
		return nil, fmt.Errorf("unknown kagome dictionary %q: %w", name, internalerr.ErrInvalidConfig)
	}

	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("create kagome tokenizer: %w", err)
	}
	return &Analyzer{tok: t, profile: profile, dict: name}, nil
}

// Profile returns the tag-scheme profile matching the dictionary.
func (a *Analyzer) Profile() *morph.Profile { return a.profile }

// Dict returns the dictionary name.
func (a *Analyzer) Dict() string { return a.dict }

// Analyze segments text into canonical tokens. Offsets are byte offsets
// into text; any text the analyzer skips is covered by space tokens.
func (a *Analyzer) Analyze(text string) ([]morph.Token, error) {
	raw := a.tok.Tokenize(text)
	tokens := make([]morph.Token, 0, len(raw))
	cursor := 0
	for _, t := range raw {
		if t.Class == tokenizer.DUMMY || t.Surface == "" {
			continue
		}
		if t.Position < cursor || t.Position+len(t.Surface) > len(text) {
			return nil, fmt.Errorf("kagome token %q at %d outside text: %w", t.Surface, t.Position, internalerr.ErrInvalidInput)
		}
		if t.Position > cursor {
			tokens = append(tokens, morph.SpaceToken(text[cursor:t.Position], cursor))
		}
		tokens = append(tokens, a.convert(t))
		cursor = t.Position + len(t.Surface)
	}
	if cursor < len(text) {
		tokens = append(tokens, morph.SpaceToken(text[cursor:], cursor))
	}
	return tokens, nil
}

func (a *Analyzer) convert(t tokenizer.Token) morph.Token {
	ctype, _ := t.InflectionalType()
	cform, _ := t.InflectionalForm()

	tok := morph.Token{
		Surface:     t.Surface,
		Start:       t.Position,
		End:         t.Position + len(t.Surface),
		Category:    a.profile.Categorize(t.POS()),
		Conjugation: a.profile.Conjugate(ctype, cform),
		Tag:         strings.Join(t.Features(), ","),
	}
	if base, ok := t.BaseForm(); ok {
		tok.BaseForm = a.profile.Field(base)
	}
	if tok.BaseForm == "" {
		tok.BaseForm = t.Surface
	}
	if reading, ok := t.Reading(); ok {
		tok.Reading = a.profile.Field(reading)
	}
	if pron, ok := t.Pronunciation(); ok {
		tok.Pronunciation = a.profile.Field(pron)
	}
	return tok
}
