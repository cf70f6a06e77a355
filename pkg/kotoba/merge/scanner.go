package merge

import (
	"log/slog"

	"github.com/cognicore/kotoba/pkg/kotoba/morph"
	"github.com/cognicore/kotoba/pkg/kotoba/rules"
	"github.com/cognicore/kotoba/pkg/kotoba/word"
)

// state of the word in progress
type state uint8

const (
	stateIdle state = iota
	stateAccumulating
	stateClosed
)

func (s state) String() string {
	switch s {
	case stateAccumulating:
		return "accumulating"
	case stateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// scanner walks one token sequence. It is owned by a single range loop.
type scanner struct {
	e      *Engine
	tokens []morph.Token
	index  int // next unconsumed token
	start  int // first token of the word in progress
	joins  []word.Join
	state  state
}

func newScanner(e *Engine, tokens []morph.Token) *scanner {
	return &scanner{e: e, tokens: tokens}
}

// next produces the following word, or false at the end of the sequence.
func (s *scanner) next() (word.Word, bool) {
	if s.index >= len(s.tokens) {
		return word.Word{}, false
	}

	s.seed()
	for s.state == stateAccumulating {
		if s.index >= len(s.tokens) {
			s.state = stateClosed
			break
		}
		s.step()
	}

	w := s.e.asm.Assemble(s.tokens[s.start:s.index], s.start, s.joins)
	s.state = stateIdle
	return w, true
}

// seed starts a new word with the next token.
func (s *scanner) seed() {
	tok := s.tokens[s.index]
	if !tok.Category.Recognized() {
		s.e.logger.Debug("unrecognized category, token stands alone",
			slog.Int("index", s.index),
			slog.String("surface", tok.Surface),
			slog.String("tag", tok.Tag),
		)
	}
	s.start = s.index
	s.index++
	s.joins = s.joins[:0]
	s.state = stateAccumulating
}

// step consults the table for the last buffered token and the next one.
func (s *scanner) step() {
	last, next := s.tokens[s.index-1], s.tokens[s.index]
	v := s.e.table.Decide(last, next)

	switch v.Decision {
	case rules.Attach:
		s.consume(1, v.Rule)
	case rules.AttachIfLookahead:
		if s.peek(v.Lookahead) {
			s.consume(1+len(v.Lookahead), v.Rule)
			return
		}
		s.e.logger.Debug("lookahead rejected, closing word",
			slog.String("rule", v.Rule.ID),
			slog.Int("index", s.index),
			slog.String("surface", next.Surface),
		)
		s.state = stateClosed
	default:
		s.state = stateClosed
	}
}

// peek checks the tokens after the candidate without consuming them.
func (s *scanner) peek(matchers []rules.Matcher) bool {
	if s.index+len(matchers) >= len(s.tokens) {
		return false
	}
	for i, m := range matchers {
		if !m(s.tokens[s.index+1+i]) {
			return false
		}
	}
	return true
}

// consume appends n tokens to the word in progress atomically.
func (s *scanner) consume(n int, r *rules.Rule) {
	join := word.Join{Kind: kindOf(r.Tier), Rule: r.ID}
	for i := 0; i < n; i++ {
		s.joins = append(s.joins, join)
	}
	s.index += n
}

func kindOf(t rules.Tier) word.Kind {
	switch t {
	case rules.TierPredicate:
		return word.KindPredicateChain
	case rules.TierNumeral:
		return word.KindNumeralCounter
	case rules.TierCompound:
		return word.KindCompoundNoun
	case rules.TierSymbol:
		return word.KindSymbolAbsorption
	default:
		return word.KindSingle
	}
}
