package morph

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
)

// Profile calibrates the token model to one dictionary's tag scheme. It maps
// raw tag strings onto the closed variants and carries the handful of surface
// forms the rule table needs to recognize.
//
// A Profile is built once and shared read-only.
type Profile struct {
	Name  string
	Unset string // placeholder for an empty tag level, "*" in MeCab dictionaries

	Majors    map[string]Major
	Subs      map[string]Sub
	Overrides []Override // consulted first, longest path wins
	ConjTypes map[string]ConjType
	ConjForms map[string]ConjForm

	ChainParticles   []string // conjunctive particles that continue a predicate chain
	NumberSeparators []string // decimal and thousands separators between numerals
	FractionCounter  string   // counter that opens a fraction, 分 in 3分の1
	FractionParticle string   // particle between the counter and the denominator
	VolitionalBases  []string // invariant auxiliaries that never carry a citation form
}

// Override maps a tag path prefix directly to a category. Dictionaries whose
// hierarchy does not line up level by level with the variants use these.
type Override struct {
	Path     []string
	Category Category
}

// Categorize maps the part-of-speech levels of one token to a Category.
func (p *Profile) Categorize(pos []string) Category {
	if c, ok := p.override(pos); ok {
		return c
	}

	var c Category
	if len(pos) > 0 {
		c.Major = p.Majors[pos[0]]
	}
	subs := [3]Sub{}
	for i := range subs {
		if i+1 >= len(pos) {
			break
		}
		subs[i] = p.sub(pos[i+1])
	}
	c.Sub1, c.Sub2, c.Sub3 = subs[0], subs[1], subs[2]
	return c
}

func (p *Profile) override(pos []string) (Category, bool) {
	best := -1
	for i, o := range p.Overrides {
		if len(o.Path) > len(pos) || (best >= 0 && len(o.Path) <= len(p.Overrides[best].Path)) {
			continue
		}
		match := true
		for j, part := range o.Path {
			if pos[j] != part {
				match = false
				break
			}
		}
		if match {
			best = i
		}
	}
	if best < 0 {
		return Category{}, false
	}
	return p.Overrides[best].Category, true
}

func (p *Profile) sub(field string) Sub {
	if field == "" || field == p.Unset {
		return SubNone
	}
	if s, ok := p.Subs[field]; ok {
		return s
	}
	return SubUnknown
}

// Conjugate maps the raw inflection type and form to a Conjugation.
// Unknown non-empty values map to ConjOther and FormOther.
func (p *Profile) Conjugate(ctype, cform string) Conjugation {
	var c Conjugation
	if ctype != "" && ctype != p.Unset {
		if t, ok := p.ConjTypes[ctype]; ok {
			c.Type = t
		} else {
			c.Type = ConjOther
		}
	}
	if cform != "" && cform != p.Unset {
		if f, ok := p.ConjForms[cform]; ok {
			c.Form = f
		} else {
			c.Form = FormOther
		}
	}
	return c
}

// Field normalizes a raw feature field, mapping the unset placeholder to "".
func (p *Profile) Field(s string) string {
	if s == p.Unset {
		return ""
	}
	return s
}

// IsChainParticle reports whether surface is a conjunctive particle that
// stays inside a predicate chain.
func (p *Profile) IsChainParticle(surface string) bool {
	return contains(p.ChainParticles, surface)
}

// IsNumberSeparator reports whether surface joins two numerals.
func (p *Profile) IsNumberSeparator(surface string) bool {
	return contains(p.NumberSeparators, surface)
}

// IsVolitional reports whether base is a volitional auxiliary.
func (p *Profile) IsVolitional(base string) bool {
	return contains(p.VolitionalBases, base)
}

// Validate checks that the profile can drive the rule table.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required: %w", internalerr.ErrInvalidConfig)
	}
	if len(p.Majors) == 0 && len(p.Overrides) == 0 {
		return fmt.Errorf("profile %q maps no categories: %w", p.Name, internalerr.ErrInvalidConfig)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Profile registry
var (
	profilesMu sync.RWMutex
	profiles   = make(map[string]*Profile)
)

// Register adds a profile to the global registry, replacing any profile of
// the same name. Built-in profiles register themselves from init().
func Register(p *Profile) {
	profilesMu.Lock()
	defer profilesMu.Unlock()
	profiles[strings.ToLower(p.Name)] = p
}

// Lookup returns a registered profile by name.
func Lookup(name string) (*Profile, error) {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", internalerr.ErrUnknownProfile, name, strings.Join(namesLocked(), ", "))
	}
	return p, nil
}

// Profiles returns all registered profile names (sorted).
func Profiles() []string {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseMajor resolves a kebab-case major class name.
func ParseMajor(name string) (Major, bool) {
	for m, n := range majorNames {
		if n == name && m != MajorUnknown {
			return m, true
		}
	}
	return MajorUnknown, false
}

// ParseSub resolves a kebab-case sub-tag name. The empty string is SubNone.
func ParseSub(name string) (Sub, bool) {
	if name == "" {
		return SubNone, true
	}
	for s, n := range subNames {
		if n == name && s != SubUnknown {
			return s, true
		}
	}
	return SubUnknown, false
}

// ParseConjType resolves a conjugation type name.
func ParseConjType(name string) (ConjType, bool) {
	for t, n := range conjTypeNames {
		if n == name && t != ConjNone {
			return t, true
		}
	}
	return ConjNone, false
}

// ParseConjForm resolves a conjugation form name.
func ParseConjForm(name string) (ConjForm, bool) {
	for f, n := range conjFormNames {
		if n == name && f != FormNone {
			return f, true
		}
	}
	return FormNone, false
}
