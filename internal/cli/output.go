package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/cognicore/kotoba/pkg/kotoba/rules"
	"github.com/cognicore/kotoba/pkg/kotoba/stoplist"
	"github.com/cognicore/kotoba/pkg/kotoba/store"
	"github.com/cognicore/kotoba/pkg/kotoba/stream"
	"github.com/cognicore/kotoba/pkg/kotoba/word"
)

// Mode is an output format.
type Mode string

const (
	ModeText   Mode = "text"
	ModeJSON   Mode = "json"
	ModeTable  Mode = "table"
	ModePretty Mode = "pretty"
)

// ValidModes lists the accepted --output values.
var ValidModes = []Mode{ModeText, ModeJSON, ModeTable, ModePretty}

// ParseMode resolves an output format name.
func ParseMode(s string) (Mode, error) {
	for _, m := range ValidModes {
		if string(m) == strings.ToLower(s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q: must be one of %v", s, ValidModes)
}

// Styles holds the lipgloss styles used in pretty output.
type Styles struct {
	Header lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style
	Kinds  map[word.Kind]lipgloss.Style
}

// DefaultStyles returns the pretty-output palette.
func DefaultStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:   lipgloss.NewStyle().Bold(true),
		Kinds: map[word.Kind]lipgloss.Style{
			word.KindSingle:           lipgloss.NewStyle(),
			word.KindSymbolAbsorption: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			word.KindNumeralCounter:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			word.KindCompoundNoun:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			word.KindPredicateChain:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		},
	}
}

// Renderer writes command results in one output mode.
type Renderer struct {
	w      io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, mode Mode) *Renderer {
	return &Renderer{w: w, mode: mode, styles: DefaultStyles()}
}

// Mode returns the output mode.
func (r *Renderer) Mode() Mode { return r.mode }

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	return t
}

// WordJSON is the JSON form of a word.
type WordJSON struct {
	Surface       string   `json:"surface"`
	Base          string   `json:"base"`
	Reading       *string  `json:"reading"`
	Pronunciation *string  `json:"pronunciation"`
	POS           string   `json:"pos"`
	Grammar       string   `json:"grammar,omitempty"`
	Kind          string   `json:"kind"`
	Category      string   `json:"category"`
	Rules         []string `json:"rules,omitempty"`
	Tokens        []string `json:"tokens"`
	Start         int      `json:"start"`
	End           int      `json:"end"`
}

func toWordJSON(w word.Word) WordJSON {
	out := WordJSON{
		Surface:  w.Surface,
		Base:     w.BaseForm,
		POS:      w.POS.String(),
		Grammar:  w.Grammar.String(),
		Kind:     w.Kind.String(),
		Category: w.Category(),
		Rules:    w.Rules,
		Start:    w.Start,
		End:      w.End,
	}
	if w.ReadingKnown {
		out.Reading = &w.Reading
	}
	if w.PronunciationKnown {
		out.Pronunciation = &w.Pronunciation
	}
	for _, t := range w.Tokens {
		out.Tokens = append(out.Tokens, t.Surface)
	}
	return out
}

// SentenceJSON is the JSON form of a sentence.
type SentenceJSON struct {
	Index int        `json:"index"`
	Text  string     `json:"text"`
	Words []WordJSON `json:"words"`
}

// Sentences renders segmented sentences.
func (r *Renderer) Sentences(sentences []stream.Sentence) error {
	switch r.mode {
	case ModeJSON:
		out := make([]SentenceJSON, 0, len(sentences))
		for _, s := range sentences {
			sj := SentenceJSON{Index: s.Index, Text: s.Text()}
			for _, w := range s.Words {
				if isSpace(w) {
					continue
				}
				sj.Words = append(sj.Words, toWordJSON(w))
			}
			out = append(out, sj)
		}
		return r.json(out)

	case ModeTable:
		t := r.table()
		t.AppendHeader(table.Row{"#", "Surface", "Base", "Reading", "POS", "Category", "Rules"})
		n := 0
		for _, s := range sentences {
			for _, w := range s.Words {
				if isSpace(w) {
					continue
				}
				reading := w.Reading
				if !w.ReadingKnown {
					reading = "?"
				}
				t.AppendRow(table.Row{n, w.Surface, w.BaseForm, reading, w.POS.String(), w.Category(), strings.Join(w.Rules, ",")})
				n++
			}
			t.AppendSeparator()
		}
		t.Render()
		return nil

	case ModePretty:
		sep := r.styles.Muted.Render(" | ")
		for _, s := range sentences {
			var parts []string
			for _, w := range s.Words {
				if isSpace(w) {
					continue
				}
				parts = append(parts, r.styles.Kinds[w.Kind].Render(w.Surface))
			}
			if len(parts) == 0 {
				continue
			}
			if _, err := fmt.Fprintln(r.w, strings.Join(parts, sep)); err != nil {
				return err
			}
		}
		return nil

	default:
		for _, s := range sentences {
			line := s.Join(" ")
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintln(r.w, line); err != nil {
				return err
			}
		}
		return nil
	}
}

func isSpace(w word.Word) bool {
	return w.POS == word.POSSymbol && strings.TrimSpace(w.Surface) == ""
}

// VocabJSON is the JSON form of a vocabulary entry.
type VocabJSON struct {
	Base    string `json:"base"`
	Reading string `json:"reading"`
	POS     string `json:"pos"`
	Count   int64  `json:"count"`
	DF      int64  `json:"docs"`
}

// Vocab renders vocabulary entries.
func (r *Renderer) Vocab(entries []store.Vocab) error {
	switch r.mode {
	case ModeJSON:
		out := make([]VocabJSON, 0, len(entries))
		for _, v := range entries {
			out = append(out, VocabJSON(v))
		}
		return r.json(out)

	case ModeTable, ModePretty:
		t := r.table()
		t.AppendHeader(table.Row{"Base", "Reading", "POS", "Count", "Docs"})
		for _, v := range entries {
			t.AppendRow(table.Row{v.Base, v.Reading, v.POS, v.Count, v.DF})
		}
		t.Render()
		return nil

	default:
		for _, v := range entries {
			if _, err := fmt.Fprintf(r.w, "%d\t%s\t%s\t%s\n", v.Count, v.Base, v.Reading, v.POS); err != nil {
				return err
			}
		}
		return nil
	}
}

// RuleJSON is the JSON form of a rule.
type RuleJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	Decision    string `json:"decision"`
	Lookahead   int    `json:"lookahead,omitempty"`
	Description string `json:"description"`
}

// Rules renders a rule table in evaluation order.
func (r *Renderer) Rules(list []rules.Rule) error {
	switch r.mode {
	case ModeJSON:
		out := make([]RuleJSON, 0, len(list))
		for _, rule := range list {
			out = append(out, RuleJSON{
				ID:          rule.ID,
				Name:        rule.Name,
				Tier:        rule.Tier.String(),
				Decision:    rule.Decision.String(),
				Lookahead:   len(rule.Lookahead),
				Description: rule.Description,
			})
		}
		return r.json(out)

	case ModeTable:
		t := r.table()
		t.AppendHeader(table.Row{"ID", "Name", "Tier", "Decision", "Description"})
		for _, rule := range list {
			t.AppendRow(table.Row{rule.ID, rule.Name, rule.Tier.String(), rule.Decision.String(), rule.Description})
		}
		t.Render()
		return nil

	case ModePretty:
		tier := rules.Tier(0)
		for _, rule := range list {
			if rule.Tier != tier {
				tier = rule.Tier
				if _, err := fmt.Fprintln(r.w, r.styles.Header.Render(tier.String())); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(r.w, "  %s  %s  %s\n",
				r.styles.Bold.Render(rule.ID), rule.Name, r.styles.Muted.Render(rule.Description)); err != nil {
				return err
			}
		}
		return nil

	default:
		for _, rule := range list {
			if _, err := fmt.Fprintf(r.w, "%s\t%s\t%s\t%s\n", rule.ID, rule.Tier, rule.Name, rule.Decision); err != nil {
				return err
			}
		}
		return nil
	}
}

// CandidateJSON is the JSON form of a stoplist suggestion.
type CandidateJSON struct {
	Base       string  `json:"base"`
	Score      float64 `json:"score"`
	DFPercent  float64 `json:"df_percent"`
	HighDF     bool    `json:"high_df"`
	Functional bool    `json:"functional"`
}

// Candidates renders stoplist suggestions.
func (r *Renderer) Candidates(list []stoplist.Candidate) error {
	switch r.mode {
	case ModeJSON:
		out := make([]CandidateJSON, 0, len(list))
		for _, c := range list {
			out = append(out, CandidateJSON{
				Base:       c.Base,
				Score:      c.Score,
				DFPercent:  c.Reason.DFPercent,
				HighDF:     c.Reason.HighDF,
				Functional: c.Reason.Functional,
			})
		}
		return r.json(out)

	case ModeTable, ModePretty:
		t := r.table()
		t.AppendHeader(table.Row{"Base", "Score", "DF %", "Reason"})
		for _, c := range list {
			t.AppendRow(table.Row{c.Base, fmt.Sprintf("%.2f", c.Score), fmt.Sprintf("%.1f", c.Reason.DFPercent), reasonLabel(c.Reason)})
		}
		t.Render()
		return nil

	default:
		for _, c := range list {
			if _, err := fmt.Fprintf(r.w, "%.2f\t%s\t%s\n", c.Score, c.Base, reasonLabel(c.Reason)); err != nil {
				return err
			}
		}
		return nil
	}
}

func reasonLabel(reason stoplist.Reason) string {
	var parts []string
	if reason.HighDF {
		parts = append(parts, "high-df")
	}
	if reason.Functional {
		parts = append(parts, "functional")
	}
	return strings.Join(parts, ",")
}

// DocJSON is the JSON form of a stored document.
type DocJSON struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title,omitempty"`
	Outlet      string     `json:"outlet,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Count       int        `json:"count"`
}

// Docs renders the documents using base, with the number of uses.
func (r *Renderer) Docs(base string, docs []store.Doc) error {
	count := func(d store.Doc) int {
		n := 0
		for _, e := range d.Entries {
			if e.Base == base {
				n += e.Count
			}
		}
		return n
	}

	switch r.mode {
	case ModeJSON:
		out := make([]DocJSON, 0, len(docs))
		for _, d := range docs {
			dj := DocJSON{ID: d.ID, URL: d.URL, Title: d.Title, Outlet: d.Outlet, Count: count(d)}
			if !d.PublishedAt.IsZero() {
				published := d.PublishedAt
				dj.PublishedAt = &published
			}
			out = append(out, dj)
		}
		return r.json(out)

	case ModeTable, ModePretty:
		t := r.table()
		t.AppendHeader(table.Row{"Count", "Title", "Outlet", "URL"})
		for _, d := range docs {
			t.AppendRow(table.Row{count(d), d.Title, d.Outlet, d.URL})
		}
		t.Render()
		return nil

	default:
		for _, d := range docs {
			if _, err := fmt.Fprintf(r.w, "%d\t%s\t%s\n", count(d), d.URL, d.Title); err != nil {
				return err
			}
		}
		return nil
	}
}
