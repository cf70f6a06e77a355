// Package rules holds the attachment rule table: an ordered catalogue of
// predicates over adjacent tokens that decides whether the next token
// extends the word in progress.
//
// Rules are grouped in tiers evaluated in a fixed priority order:
//
//	predicate chain > numeral-counter > compound noun > symbol absorption
//
// The first matching rule wins. When nothing matches the decision is Break.
// A token whose category the profile does not recognize never attaches on
// either side.
package rules

import (
	"fmt"

	"github.com/cognicore/kotoba/pkg/kotoba/morph"
)

// MaxLookahead bounds the number of tokens a rule may peek past the
// candidate token.
const MaxLookahead = 2

// Decision is the outcome of evaluating one token pair.
type Decision uint8

const (
	// Break closes the word in progress; the next token starts a new one.
	Break Decision = iota
	// Attach extends the word in progress with the next token.
	Attach
	// AttachIfLookahead attaches the next token together with the peeked
	// tokens only if all lookahead matchers accept.
	AttachIfLookahead
)

func (d Decision) String() string {
	switch d {
	case Attach:
		return "attach"
	case AttachIfLookahead:
		return "attach-if-lookahead"
	default:
		return "break"
	}
}

// Tier is the priority group a rule belongs to.
type Tier uint8

const (
	TierPredicate Tier = iota + 1
	TierNumeral
	TierCompound
	TierSymbol
)

func (t Tier) String() string {
	switch t {
	case TierPredicate:
		return "predicate-chain"
	case TierNumeral:
		return "numeral-counter"
	case TierCompound:
		return "compound-noun"
	case TierSymbol:
		return "symbol-absorption"
	default:
		return "default"
	}
}

// Matcher tests one lookahead token.
type Matcher func(morph.Token) bool

// Rule is one entry of the catalogue.
type Rule struct {
	ID          string
	Name        string
	Tier        Tier
	Description string

	// When reports whether the rule applies to the last buffered token and
	// the next unconsumed token.
	When func(last, next morph.Token) bool

	Decision  Decision
	Lookahead []Matcher // tokens after next, only for AttachIfLookahead
}

// Verdict is the answer of Table.Decide.
type Verdict struct {
	Decision  Decision
	Rule      *Rule // nil for the default break and for fallbacks
	Lookahead []Matcher
	Fallback  bool // an unrecognized category forced the break
}

// Table is an immutable, ordered rule catalogue bound to one profile.
// It is safe to share between goroutines.
type Table struct {
	opts    Options
	profile *morph.Profile
	rules   []Rule
}

// New builds the table for opts, resolving the profile from the registry.
func New(opts Options) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	profile, err := morph.Lookup(opts.Profile)
	if err != nil {
		return nil, err
	}
	return NewWithProfile(profile, opts)
}

// NewWithProfile builds the table for an explicit profile. opts.Profile is
// ignored.
func NewWithProfile(profile *morph.Profile, opts Options) (*Table, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	opts.Profile = profile.Name

	var rules []Rule
	for _, r := range catalogue(profile) {
		if r.Tier == TierCompound && !opts.MergeCompounds {
			continue
		}
		if r.Tier == TierSymbol && !opts.AbsorbSymbols {
			continue
		}
		if len(r.Lookahead) > MaxLookahead {
			return nil, fmt.Errorf("rule %s peeks %d tokens, max %d", r.ID, len(r.Lookahead), MaxLookahead)
		}
		rules = append(rules, r)
	}
	return &Table{opts: opts, profile: profile, rules: rules}, nil
}

// MustNew is like New but panics on error. Intended for tests and package
// level defaults.
func MustNew(opts Options) *Table {
	t, err := New(opts)
	if err != nil {
		panic(err)
	}
	return t
}

// Decide evaluates the catalogue for one token pair.
func (t *Table) Decide(last, next morph.Token) Verdict {
	if !last.Category.Recognized() || !next.Category.Recognized() {
		return Verdict{Decision: Break, Fallback: true}
	}
	for i := range t.rules {
		r := &t.rules[i]
		if r.When(last, next) {
			return Verdict{Decision: r.Decision, Rule: r, Lookahead: r.Lookahead}
		}
	}
	return Verdict{Decision: Break}
}

// Rules returns the active rules in evaluation order. The slice is a copy;
// the rules share their predicates with the table.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Profile returns the profile the table is calibrated for.
func (t *Table) Profile() *morph.Profile { return t.profile }

// Options returns the options the table was built with.
func (t *Table) Options() Options { return t.opts }
