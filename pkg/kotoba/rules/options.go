package rules

import (
	"fmt"
	"strings"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
)

// Options selects the profile and the optional tiers of a Table.
type Options struct {
	// Profile names the tag scheme the table is calibrated for.
	Profile string `yaml:"rule_profile" koanf:"rule_profile" json:"rule_profile"`
	// AbsorbSymbols enables the symbol-absorption tier.
	AbsorbSymbols bool `yaml:"absorb_symbols" koanf:"absorb_symbols" json:"absorb_symbols"`
	// MergeCompounds enables the compound-noun tier.
	MergeCompounds bool `yaml:"merge_compounds" koanf:"merge_compounds" json:"merge_compounds"`
}

// DefaultOptions returns the IPADIC profile with compounds merged and
// symbols left standalone.
func DefaultOptions() Options {
	return Options{
		Profile:        "ipadic",
		AbsorbSymbols:  false,
		MergeCompounds: true,
	}
}

// Validate checks the options are usable.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Profile) == "" {
		return fmt.Errorf("rule_profile is required: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}
