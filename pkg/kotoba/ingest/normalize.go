package ingest

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
)

// Normalization selects the Unicode normalization applied before analysis.
type Normalization string

const (
	NormalizeNone  Normalization = "none"
	NormalizeNFC   Normalization = "nfc"
	NormalizeNFKC  Normalization = "nfkc"
	NormalizeWidth Normalization = "width" // NFC, then fold full-width ASCII and half-width kana
)

// ParseNormalization resolves a normalization name. The empty string is
// NormalizeNone.
func ParseNormalization(s string) (Normalization, error) {
	switch n := Normalization(strings.ToLower(strings.TrimSpace(s))); n {
	case "":
		return NormalizeNone, nil
	case NormalizeNone, NormalizeNFC, NormalizeNFKC, NormalizeWidth:
		return n, nil
	default:
		return "", fmt.Errorf("%w: normalization %q (want none, nfc, nfkc or width)", internalerr.ErrInvalidConfig, s)
	}
}

// Apply normalizes text.
func (n Normalization) Apply(text string) string {
	switch n {
	case NormalizeNFC:
		return norm.NFC.String(text)
	case NormalizeNFKC:
		return norm.NFKC.String(text)
	case NormalizeWidth:
		return width.Fold.String(norm.NFC.String(text))
	default:
		return text
	}
}
