// Package stoplist keeps the base forms excluded from vocabulary counts.
package stoplist

import (
	"slices"
	"sync"
)

// Manager handles the base-form stoplist. It is safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	stops map[string]Reason
}

// Reason explains why a base form is stopped
type Reason struct {
	Configured bool    // listed in a stoplist file
	HighDF     bool    // appears in most documents
	Functional bool    // grammatical word class (particle, auxiliary, symbol)
	DFPercent  float64 // share of documents containing the base form
}

// NewManager creates a stoplist manager seeded with configured base forms
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		if s == "" {
			continue
		}
		stops[s] = Reason{Configured: true}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a base form is stopped
func (m *Manager) IsStop(base string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.stops[base]
	return ok
}

// Reason returns why base is stopped.
func (m *Manager) Reason(base string) (Reason, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.stops[base]
	return r, ok
}

// Add adds a base form with a reason
func (m *Manager) Add(base string, reason Reason) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops[base] = reason
}

// Remove removes a base form from the stoplist
func (m *Manager) Remove(base string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stops, base)
}

// All returns all stopped base forms, sorted
func (m *Manager) All() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	slices.Sort(result)
	return result
}

// Len returns the number of stopped base forms.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stops)
}

// Stats holds corpus statistics for one base form
type Stats struct {
	Base       string
	DF         int64
	DFPercent  float64
	Functional bool
}

// Candidate represents a suggested stop base form
type Candidate struct {
	Base   string
	Reason Reason
	Score  float64 // confidence score
}

// Thresholds defines criteria for stop suggestions
type Thresholds struct {
	DFPercent           float64 // any base form above this share is suggested
	FunctionalDFPercent float64 // lower bar for grammatical word classes
	MinDocs             int64   // below this corpus size nothing is suggested
}

// DefaultThresholds returns the default suggestion thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent:           80.0,
		FunctionalDFPercent: 40.0,
		MinDocs:             10,
	}
}

// SuggestCandidates suggests base forms that should be stopped, highest
// score first. totalDocs is the corpus size the stats were computed over.
func (m *Manager) SuggestCandidates(stats []Stats, totalDocs int64, thresholds Thresholds) []Candidate {
	if totalDocs < thresholds.MinDocs {
		return nil
	}

	var candidates []Candidate
	for _, s := range stats {
		if m.IsStop(s.Base) {
			continue
		}

		highDF := s.DFPercent > thresholds.DFPercent
		functionalDF := s.Functional && s.DFPercent > thresholds.FunctionalDFPercent
		if !highDF && !functionalDF {
			continue
		}

		score := s.DFPercent / 100.0
		if s.Functional {
			score = (score + 1.0) / 2.0
		}
		candidates = append(candidates, Candidate{
			Base: s.Base,
			Reason: Reason{
				HighDF:     highDF,
				Functional: s.Functional,
				DFPercent:  s.DFPercent,
			},
			Score: score,
		})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		if a.Base < b.Base {
			return -1
		}
		if a.Base > b.Base {
			return 1
		}
		return 0
	})
	return candidates
}
