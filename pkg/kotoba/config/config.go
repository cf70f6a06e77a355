package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
)

// Stoplist represents the stoplist configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopped base forms from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	terms := sl.Terms[:0]
	for _, term := range sl.Terms {
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, term)
		}
	}
	sl.Terms = terms

	return &sl, nil
}

// Profile is the file form of a tag-scheme profile. Class and sub-tag
// values use the kebab-case variant names, e.g. "noun" or "sahen".
type Profile struct {
	Name             string            `yaml:"name"`
	Extends          string            `yaml:"extends"`
	Unset            string            `yaml:"unset"`
	Majors           map[string]string `yaml:"majors"`
	Subs             map[string]string `yaml:"subs"`
	Overrides        []Override        `yaml:"overrides"`
	ConjTypes        map[string]string `yaml:"conj_types"`
	ConjForms        map[string]string `yaml:"conj_forms"`
	ChainParticles   []string          `yaml:"chain_particles"`
	NumberSeparators []string          `yaml:"number_separators"`
	FractionCounter  string            `yaml:"fraction_counter"`
	FractionParticle string            `yaml:"fraction_particle"`
	VolitionalBases  []string          `yaml:"volitional_bases"`
}

// Override maps a tag path to a category written as "major/sub1/sub2/sub3"
type Override struct {
	Path     []string `yaml:"path"`
	Category string   `yaml:"category"`
}

// LoadProfile loads a tag-scheme profile from a YAML file. Unknown keys
// and unknown variant names are rejected.
func LoadProfile(path string) (*morph.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	p, err := raw.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Build converts the file form into a validated morph.Profile. When
// Extends names a registered profile, its tables are copied first and the
// file's entries are layered on top.
func (r *Profile) Build() (*morph.Profile, error) {
	p := &morph.Profile{
		Majors:    map[string]morph.Major{},
		Subs:      map[string]morph.Sub{},
		ConjTypes: map[string]morph.ConjType{},
		ConjForms: map[string]morph.ConjForm{},
	}
	if r.Extends != "" {
		parent, err := morph.Lookup(r.Extends)
		if err != nil {
			return nil, err
		}
		inherit(p, parent)
	}

	p.Name = strings.ToLower(strings.TrimSpace(r.Name))
	if r.Unset != "" {
		p.Unset = r.Unset
	}

	for tag, name := range r.Majors {
		m, ok := morph.ParseMajor(name)
		if !ok {
			return nil, fmt.Errorf("%w: major %q for tag %q", internalerr.ErrInvalidConfig, name, tag)
		}
		p.Majors[tag] = m
	}
	for tag, name := range r.Subs {
		s, ok := morph.ParseSub(name)
		if !ok {
			return nil, fmt.Errorf("%w: sub-tag %q for tag %q", internalerr.ErrInvalidConfig, name, tag)
		}
		p.Subs[tag] = s
	}
	for tag, name := range r.ConjTypes {
		t, ok := morph.ParseConjType(name)
		if !ok {
			return nil, fmt.Errorf("%w: conjugation type %q for tag %q", internalerr.ErrInvalidConfig, name, tag)
		}
		p.ConjTypes[tag] = t
	}
	for tag, name := range r.ConjForms {
		f, ok := morph.ParseConjForm(name)
		if !ok {
			return nil, fmt.Errorf("%w: conjugation form %q for tag %q", internalerr.ErrInvalidConfig, name, tag)
		}
		p.ConjForms[tag] = f
	}
	for i, o := range r.Overrides {
		if len(o.Path) == 0 {
			return nil, fmt.Errorf("%w: override %d has an empty path", internalerr.ErrInvalidConfig, i)
		}
		c, err := ParseCategory(o.Category)
		if err != nil {
			return nil, fmt.Errorf("override %d: %w", i, err)
		}
		p.Overrides = append(p.Overrides, morph.Override{Path: slices.Clone(o.Path), Category: c})
	}

	if len(r.ChainParticles) > 0 {
		p.ChainParticles = slices.Clone(r.ChainParticles)
	}
	if len(r.NumberSeparators) > 0 {
		p.NumberSeparators = slices.Clone(r.NumberSeparators)
	}
	if r.FractionCounter != "" {
		p.FractionCounter = r.FractionCounter
	}
	if r.FractionParticle != "" {
		p.FractionParticle = r.FractionParticle
	}
	if len(r.VolitionalBases) > 0 {
		p.VolitionalBases = slices.Clone(r.VolitionalBases)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func inherit(dst, src *morph.Profile) {
	dst.Unset = src.Unset
	maps.Copy(dst.Majors, src.Majors)
	maps.Copy(dst.Subs, src.Subs)
	maps.Copy(dst.ConjTypes, src.ConjTypes)
	maps.Copy(dst.ConjForms, src.ConjForms)
	dst.Overrides = slices.Clone(src.Overrides)
	dst.ChainParticles = slices.Clone(src.ChainParticles)
	dst.NumberSeparators = slices.Clone(src.NumberSeparators)
	dst.FractionCounter = src.FractionCounter
	dst.FractionParticle = src.FractionParticle
	dst.VolitionalBases = slices.Clone(src.VolitionalBases)
}

// ParseCategory parses "major/sub1/sub2/sub3". Missing levels are SubNone.
func ParseCategory(s string) (morph.Category, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) > 4 {
		return morph.Category{}, fmt.Errorf("%w: category %q has more than four levels", internalerr.ErrInvalidConfig, s)
	}

	var c morph.Category
	m, ok := morph.ParseMajor(parts[0])
	if !ok {
		return morph.Category{}, fmt.Errorf("%w: category %q: unknown major %q", internalerr.ErrInvalidConfig, s, parts[0])
	}
	c.Major = m

	subs := []*morph.Sub{&c.Sub1, &c.Sub2, &c.Sub3}
	for i, part := range parts[1:] {
		sub, ok := morph.ParseSub(part)
		if !ok {
			return morph.Category{}, fmt.Errorf("%w: category %q: unknown sub-tag %q", internalerr.ErrInvalidConfig, s, part)
		}
		*subs[i] = sub
	}
	return c, nil
}
