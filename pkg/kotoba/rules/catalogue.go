package rules

import (
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
)

// catalogue returns every rule in priority order, closed over the profile's
// calibration surfaces. Optional tiers are filtered by the caller.
func catalogue(p *morph.Profile) []Rule {
	// chainable reports whether tok can carry a predicate chain forward.
	chainable := func(tok morph.Token) bool {
		return tok.Inflecting() || chainParticle(p, tok)
	}

	return []Rule{
		// Predicate chain
		{
			ID:          "P01",
			Name:        "auxiliary",
			Tier:        TierPredicate,
			Description: "auxiliary verb after an inflecting token or a chain particle",
			When: func(last, next morph.Token) bool {
				return next.Category.Major == morph.AuxVerb && chainable(last)
			},
			Decision: Attach,
		},
		{
			ID:          "P02",
			Name:        "chain-particle",
			Tier:        TierPredicate,
			Description: "conjunctive particle (て, で, ば) after an inflecting token",
			When: func(last, next morph.Token) bool {
				return last.Inflecting() && chainParticle(p, next)
			},
			Decision: Attach,
		},
		{
			ID:          "P03",
			Name:        "dependent-predicate",
			Tier:        TierPredicate,
			Description: "non-independent or suffix verb/adjective continuing a chain, except imperative-i forms",
			When: func(last, next morph.Token) bool {
				if next.Category.Major != morph.Verb && next.Category.Major != morph.Adjective {
					return false
				}
				if next.Category.Sub1 != morph.NonIndependent && next.Category.Sub1 != morph.Suffix {
					return false
				}
				return next.Conjugation.Form != morph.FormImperativeI && chainable(last)
			},
			Decision: Attach,
		},
		{
			ID:          "P04",
			Name:        "sahen-suru",
			Tier:        TierPredicate,
			Description: "sahen, adverbial, adjectival or nai-stem noun followed by する",
			When: func(last, next morph.Token) bool {
				if next.Conjugation.Type != morph.ConjSahenSuru || next.Category.Major != morph.Verb {
					return false
				}
				return isNoun(last, morph.SahenConnection, morph.AdverbialPossible, morph.AdjectivalNounStem, morph.NaiAdjectiveStem)
			},
			Decision: Attach,
		},
		{
			ID:          "P05",
			Name:        "adjectival-na",
			Tier:        TierPredicate,
			Description: "adjectival noun stem followed by attributive だ (な)",
			When: func(last, next morph.Token) bool {
				return isNoun(last, morph.AdjectivalNounStem) && attributiveCopula(next)
			},
			Decision: Attach,
		},
		{
			ID:          "P05b",
			Name:        "dependent-adjectival",
			Tier:        TierPredicate,
			Description: "non-independent or special adjectival stem (みたい) followed by attributive だ (な) or adnominal の",
			When: func(last, next morph.Token) bool {
				if !isNoun(last, morph.NonIndependent, morph.Special) || !last.Category.Has(morph.AdjectivalNounStem) {
					return false
				}
				return attributiveCopula(next) || next.Category.Is(morph.Particle, morph.Adnominalizer)
			},
			Decision: Attach,
		},
		{
			ID:          "P06",
			Name:        "nai-stem",
			Tier:        TierPredicate,
			Description: "ナイ-adjective stem followed by ない",
			When: func(last, next morph.Token) bool {
				return isNoun(last, morph.NaiAdjectiveStem) && next.Conjugation.Type == morph.ConjNai
			},
			Decision: Attach,
		},
		{
			ID:          "P07",
			Name:        "auxiliary-stem",
			Tier:        TierPredicate,
			Description: "auxiliary stem (よう, そう) followed by attributive だ or an adverbializing particle",
			When: func(last, next morph.Token) bool {
				if !last.Category.Has(morph.AuxVerbStem) || last.Category.Major != morph.Noun {
					return false
				}
				return attributiveCopula(next) || next.Category.Is(morph.Particle, morph.Adverbializer)
			},
			Decision: Attach,
		},
		{
			ID:          "P08",
			Name:        "adverbial-ni",
			Tier:        TierPredicate,
			Description: "non-independent adverbial noun followed by に",
			When: func(last, next morph.Token) bool {
				return last.Category.Is(morph.Noun, morph.NonIndependent) &&
					last.Category.Sub2 == morph.AdverbialPossible &&
					next.Category.Major == morph.Particle && next.Surface == "に"
			},
			Decision: Attach,
		},

		// Numeral-counter
		{
			ID:          "N01",
			Name:        "numeral-chain",
			Tier:        TierNumeral,
			Description: "numeral followed by numeral",
			When: func(last, next morph.Token) bool {
				return isNumeral(last) && isNumeral(next)
			},
			Decision: Attach,
		},
		{
			ID:          "N02",
			Name:        "counter",
			Tier:        TierNumeral,
			Description: "numeral followed by a counter",
			When: func(last, next morph.Token) bool {
				return isNumeral(last) && next.Category.Major == morph.Noun && next.Category.Has(morph.Counter)
			},
			Decision: Attach,
		},
		{
			ID:          "N03",
			Name:        "numeral-prefix",
			Tier:        TierNumeral,
			Description: "numeral-connecting prefix (第, 約) followed by numeral",
			When: func(last, next morph.Token) bool {
				return last.Category.Is(morph.Prefix, morph.NumeralConnection) && isNumeral(next)
			},
			Decision: Attach,
		},
		{
			ID:          "N04",
			Name:        "decimal",
			Tier:        TierNumeral,
			Description: "numeral, decimal or thousands separator, numeral",
			When: func(last, next morph.Token) bool {
				return isNumeral(last) && p.IsNumberSeparator(next.Surface)
			},
			Decision:  AttachIfLookahead,
			Lookahead: []Matcher{isNumeral},
		},
		{
			ID:          "N05",
			Name:        "fraction",
			Tier:        TierNumeral,
			Description: "fraction counter 分, の, numeral",
			When: func(last, next morph.Token) bool {
				return p.FractionCounter != "" &&
					last.Surface == p.FractionCounter && last.Category.Has(morph.Counter) &&
					next.Surface == p.FractionParticle && next.Category.Major == morph.Particle
			},
			Decision:  AttachIfLookahead,
			Lookahead: []Matcher{isNumeral},
		},
		{
			ID:          "N06",
			Name:        "fused-fraction",
			Tier:        TierNumeral,
			Description: "counter token spelled 分の, numeral",
			When: func(last, next morph.Token) bool {
				return p.FractionCounter != "" &&
					last.Surface == p.FractionCounter+p.FractionParticle && last.Category.Has(morph.Counter) &&
					isNumeral(next)
			},
			Decision: Attach,
		},

		// Compound noun
		{
			ID:          "C01",
			Name:        "sentence-final-break",
			Tier:        TierCompound,
			Description: "noun never attaches to a following sentence-final particle",
			When: func(last, next morph.Token) bool {
				return last.Category.Major == morph.Noun && next.Category.Is(morph.Particle, morph.SentenceFinal)
			},
			Decision: Break,
		},
		{
			ID:          "C02",
			Name:        "noun-suffix",
			Tier:        TierCompound,
			Description: "noun suffix attaches to the preceding noun or predicate stem",
			When: func(last, next morph.Token) bool {
				if !next.Category.Is(morph.Noun, morph.Suffix) {
					return false
				}
				switch last.Category.Major {
				case morph.Noun, morph.Prefix, morph.Verb, morph.Adjective, morph.AuxVerb:
					return true
				}
				return false
			},
			Decision: Attach,
		},
		{
			ID:          "C03",
			Name:        "prefix",
			Tier:        TierCompound,
			Description: "prefix attaches to the following head noun",
			When: func(last, next morph.Token) bool {
				return last.Category.Major == morph.Prefix && (compoundHead(next) || isNumeral(next))
			},
			Decision: Attach,
		},
		{
			ID:          "C04",
			Name:        "noun-noun",
			Tier:        TierCompound,
			Description: "adjacent common, proper, sahen or adjectival nouns form a compound",
			When: func(last, next morph.Token) bool {
				return compoundHead(last) && compoundHead(next)
			},
			Decision: Attach,
		},

		// Symbol absorption
		{
			ID:          "S01",
			Name:        "closing-symbol",
			Tier:        TierSymbol,
			Description: "closing bracket or punctuation attaches to the preceding word unless a space intervenes",
			When: func(last, next morph.Token) bool {
				if next.Category.Major != morph.Symbol {
					return false
				}
				switch next.Category.Sub1 {
				case morph.BracketClose, morph.Period, morph.Comma:
				default:
					return false
				}
				return !isSpace(last)
			},
			Decision: Attach,
		},
		{
			ID:          "S02",
			Name:        "opening-bracket",
			Tier:        TierSymbol,
			Description: "opening bracket attaches to the following word",
			When: func(last, next morph.Token) bool {
				return last.Category.Is(morph.Symbol, morph.BracketOpen) && !isSpace(next)
			},
			Decision: Attach,
		},
	}
}

func isNoun(tok morph.Token, subs ...morph.Sub) bool {
	if tok.Category.Major != morph.Noun {
		return false
	}
	for _, s := range subs {
		if tok.Category.Sub1 == s {
			return true
		}
	}
	return false
}

func isNumeral(tok morph.Token) bool {
	return tok.Category.Is(morph.Noun, morph.Numeral)
}

func isSpace(tok morph.Token) bool {
	return tok.Category.Is(morph.Symbol, morph.Space)
}

func compoundHead(tok morph.Token) bool {
	return isNoun(tok, morph.Common, morph.Proper, morph.SahenConnection, morph.AdjectivalNounStem)
}

func chainParticle(p *morph.Profile, tok morph.Token) bool {
	return tok.Category.Is(morph.Particle, morph.Conjunctive) && p.IsChainParticle(tok.Surface)
}

func attributiveCopula(tok morph.Token) bool {
	return tok.Category.Major == morph.AuxVerb &&
		tok.Conjugation.Type == morph.ConjDa &&
		tok.Conjugation.Form == morph.FormAttributive
}
