package morph

import (
	"fmt"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
)

// Token is one analyzer morpheme in canonical form.
// Start and End are byte offsets into the original text, suitable for
// slicing it directly: text[tok.Start:tok.End] == tok.Surface.
type Token struct {
	Surface       string
	Start         int
	End           int
	Reading       string // empty when the analyzer has no reading
	Pronunciation string
	BaseForm      string
	Category      Category
	Conjugation   Conjugation
	Tag           string // raw analyzer tag, for diagnostics only
}

// Inflecting reports whether the token belongs to an inflecting class.
func (t Token) Inflecting() bool {
	switch t.Category.Major {
	case Verb, Adjective, AuxVerb:
		return true
	}
	return false
}

// Lemma returns the base form, falling back to the surface.
func (t Token) Lemma() string {
	if t.BaseForm == "" {
		return t.Surface
	}
	return t.BaseForm
}

// SpaceToken builds the synthetic token adapters insert for whitespace the
// analyzer skipped, so that offsets stay contiguous.
func SpaceToken(surface string, start int) Token {
	return Token{
		Surface:       surface,
		Start:         start,
		End:           start + len(surface),
		Reading:       surface,
		Pronunciation: surface,
		BaseForm:      surface,
		Category:      Category{Major: Symbol, Sub1: Space},
		Tag:           "space",
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d](%s)", t.Surface, t.Start, t.End, t.Category)
}

// StructuralError reports a token sequence that breaks the offset contract.
// It always matches internalerr.ErrStructural.
type StructuralError struct {
	Index  int   // index of the offending token
	Prev   Token // token before it; zero when Index == 0
	Token  Token
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("token %d %q [%d:%d]: %s",
			e.Index, e.Token.Surface, e.Token.Start, e.Token.End, e.Reason)
	}
	return fmt.Sprintf("token %d %q [%d:%d] after %q [%d:%d]: %s",
		e.Index, e.Token.Surface, e.Token.Start, e.Token.End,
		e.Prev.Surface, e.Prev.Start, e.Prev.End, e.Reason)
}

// Unwrap lets errors.Is match internalerr.ErrStructural.
func (e *StructuralError) Unwrap() error {
	return internalerr.ErrStructural
}

// Validate checks the offset contract over a whole sequence: every token is
// non-empty with End-Start equal to its byte length, and each token starts
// exactly where the previous one ended.
func Validate(tokens []Token) error {
	for i, tok := range tokens {
		if tok.Start < 0 || tok.End <= tok.Start {
			return &StructuralError{Index: i, Prev: prev(tokens, i), Token: tok, Reason: "empty or inverted offsets"}
		}
		if tok.End-tok.Start != len(tok.Surface) {
			return &StructuralError{
				Index: i, Prev: prev(tokens, i), Token: tok,
				Reason: fmt.Sprintf("offset span %d does not match surface length %d", tok.End-tok.Start, len(tok.Surface)),
			}
		}
		if i == 0 {
			continue
		}
		p := tokens[i-1]
		switch {
		case tok.Start < p.End:
			return &StructuralError{Index: i, Prev: p, Token: tok, Reason: "overlaps or precedes previous token"}
		case tok.Start > p.End:
			return &StructuralError{Index: i, Prev: p, Token: tok, Reason: fmt.Sprintf("gap of %d bytes after previous token", tok.Start-p.End)}
		}
	}
	return nil
}

func prev(tokens []Token, i int) Token {
	if i == 0 {
		return Token{}
	}
	return tokens[i-1]
}
