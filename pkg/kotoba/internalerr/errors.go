package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate entry")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")

	// ErrStructural marks a token sequence that breaks the offset contract
	// (gaps, overlaps, out-of-order or empty tokens).
	ErrStructural = errors.New("structural violation in token sequence")

	// ErrUnknownProfile is returned when a rule profile name is not registered.
	ErrUnknownProfile = errors.New("unknown rule profile")
)
