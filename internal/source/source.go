// Package source loads leaderboard entries, either from the built-in demo
// board or from YAML/JSON data files under a root directory.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/hackerhouse/hhboard/internal/config"
	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

// ErrNoData is returned when no data file matched the configured patterns.
var ErrNoData = errors.New("no leaderboard data found")

// Source produces the entries a leaderboard is ranked from.
type Source interface {
	Entries(ctx context.Context) ([]leaderboard.Entry, error)
}

// New picks the demo board when cfg.Demo is set and a FileSource otherwise.
// A nil table means scoring.DefaultTable.
func New(cfg *config.Config, table *scoring.Table) Source {
	if cfg.Demo {
		return DemoSource{}
	}
	return &FileSource{
		Root:        cfg.Root,
		Patterns:    cfg.Data,
		Concurrency: cfg.Concurrency,
		Table:       table,
		Now:         time.Now,
	}
}
