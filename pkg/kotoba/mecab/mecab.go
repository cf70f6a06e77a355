// Package mecab adapts MeCab-format analyzer output to canonical tokens.
//
// A dump is one morpheme per line, "surface<TAB>f1,f2,...", with "EOS"
// closing each sentence. Features follow the IPADIC layout: four
// part-of-speech levels, conjugation type, conjugation form, base form,
// reading and pronunciation. The last three may be missing for unknown words.
package mecab

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
)

// MinFeatures is the number of feature fields every line must carry.
const MinFeatures = 6

const (
	fieldBase          = 6
	fieldReading       = 7
	fieldPronunciation = 8
)

// RawToken is one analyzer line before normalization
type RawToken struct {
	Surface string
	Feature string
	Line    int // 1-based line in the dump, 0 when not parsed from one
}

// Parse reads a MeCab dump and returns one slice of raw tokens per sentence.
// A trailing sentence without EOS is kept.
func Parse(r io.Reader) ([][]RawToken, error) {
	var (
		sentences [][]RawToken
		current   []RawToken
		lineNo    int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if line == "EOS" {
			sentences = append(sentences, current)
			current = nil
			continue
		}

		surface, feature, ok := strings.Cut(line, "\t")
		if !ok || surface == "" {
			return nil, fmt.Errorf("line %d: expected surface<TAB>features: %w", lineNo, internalerr.ErrInvalidInput)
		}
		current = append(current, RawToken{Surface: surface, Feature: feature, Line: lineNo})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mecab output: %w", err)
	}

	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences, nil
}

// Prepare converts raw tokens to canonical tokens with offsets accumulated
// from zero, as if the surfaces were the whole text.
func Prepare(raw []RawToken, p *morph.Profile) ([]morph.Token, error) {
	tokens := make([]morph.Token, 0, len(raw))
	offset := 0
	for _, r := range raw {
		tok, err := convert(r, offset, p)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		offset = tok.End
	}
	return tokens, nil
}

// Align places raw tokens in the original text. MeCab drops whitespace, so
// any skipped whitespace becomes a synthetic space token. Skipped text that
// is not whitespace means the dump does not belong to text.
func Align(text string, raw []RawToken, p *morph.Profile) ([]morph.Token, error) {
	tokens := make([]morph.Token, 0, len(raw))
	cursor := 0
	for _, r := range raw {
		idx := strings.Index(text[cursor:], r.Surface)
		if idx < 0 {
			return nil, fmt.Errorf("line %d: surface %q not found after offset %d: %w",
				r.Line, r.Surface, cursor, internalerr.ErrInvalidInput)
		}
		if idx > 0 {
			gap := text[cursor : cursor+idx]
			if strings.TrimFunc(gap, unicode.IsSpace) != "" {
				return nil, fmt.Errorf("line %d: unaligned text %q before %q: %w",
					r.Line, gap, r.Surface, internalerr.ErrInvalidInput)
			}
			tokens = append(tokens, morph.SpaceToken(gap, cursor))
			cursor += idx
		}

		tok, err := convert(r, cursor, p)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		cursor = tok.End
	}

	if rest := text[cursor:]; rest != "" {
		if strings.TrimFunc(rest, unicode.IsSpace) != "" {
			return nil, fmt.Errorf("unaligned trailing text %q: %w", rest, internalerr.ErrInvalidInput)
		}
		tokens = append(tokens, morph.SpaceToken(rest, cursor))
	}
	return tokens, nil
}

func convert(r RawToken, start int, p *morph.Profile) (morph.Token, error) {
	fields := strings.Split(r.Feature, ",")
	if len(fields) < MinFeatures {
		return morph.Token{}, fmt.Errorf("line %d: %q has %d feature fields, want at least %d: %w",
			r.Line, r.Surface, len(fields), MinFeatures, internalerr.ErrInvalidInput)
	}

	tok := morph.Token{
		Surface:     r.Surface,
		Start:       start,
		End:         start + len(r.Surface),
		Category:    p.Categorize(fields[:4]),
		Conjugation: p.Conjugate(fields[4], fields[5]),
		Tag:         r.Feature,
	}
	tok.BaseForm = field(fields, fieldBase, p)
	if tok.BaseForm == "" {
		tok.BaseForm = r.Surface
	}
	tok.Reading = field(fields, fieldReading, p)
	tok.Pronunciation = field(fields, fieldPronunciation, p)
	return tok, nil
}

func field(fields []string, i int, p *morph.Profile) string {
	if i >= len(fields) {
		return ""
	}
	return p.Field(fields[i])
}
