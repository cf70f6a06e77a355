package config

import (
	"fmt"
	"log/slog"

	"github.com/cognicore/kotoba/pkg/kotoba/merge"
	"github.com/cognicore/kotoba/pkg/kotoba/morph"
	"github.com/cognicore/kotoba/pkg/kotoba/rules"
	"github.com/cognicore/kotoba/pkg/kotoba/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	StoplistPath string
	ProfilePaths []string // extra tag-scheme profiles, registered before the table is built
	Options      rules.Options
	Logger       *slog.Logger
}

// Components holds all loaded configuration components
type Components struct {
	Profile  *morph.Profile
	Table    *rules.Table
	Engine   *merge.Engine
	Stoplist *stoplist.Manager
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load and register profiles
	for _, path := range l.ProfilePaths {
		p, err := LoadProfile(path)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		morph.Register(p)
	}

	// Build the rule table
	opts := l.Options
	if opts.Profile == "" {
		opts.Profile = rules.DefaultOptions().Profile
	}
	table, err := rules.New(opts)
	if err != nil {
		return nil, fmt.Errorf("build rule table: %w", err)
	}
	comp.Table = table
	comp.Profile = table.Profile()

	var engineOpts []merge.Option
	if l.Logger != nil {
		engineOpts = append(engineOpts, merge.WithLogger(l.Logger))
	}
	comp.Engine = merge.New(table, engineOpts...)

	// Load stoplist
	stops, err := LoadStoplistManager(l.StoplistPath)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	comp.Stoplist = stops

	return comp, nil
}

// LoadStoplistManager loads a stoplist file into a manager. An empty path
// gives an empty stoplist.
func LoadStoplistManager(path string) (*stoplist.Manager, error) {
	if path == "" {
		return stoplist.NewManager([]string{}), nil
	}
	sl, err := LoadStoplist(path)
	if err != nil {
		return nil, err
	}
	return stoplist.NewManager(sl.Terms), nil
}
