package source

import (
	"context"
	"time"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

// demoEntries is the board shown before any real data exists.
//
//nolint:gochecknoglobals
var demoEntries = []leaderboard.Entry{
	{
		UserID:        "demo-alice",
		Name:          "Alice Chen",
		Role:          scoring.RoleCoder,
		Tagline:       "Full-stack wizard building the next unicorn",
		TotalPoints:   285,
		ActivityCount: 23,
		StreakDays:    12,
		LastActivity:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		UserID:        "demo-admin",
		Name:          "Admin User",
		Role:          scoring.RoleMisc,
		Tagline:       "Managing the house like a boss",
		TotalPoints:   150,
		ActivityCount: 8,
		StreakDays:    10,
		LastActivity:  time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC),
	},
}

// DemoSource serves the fixed demo leaderboard.
type DemoSource struct{}

// Entries returns a copy of the demo board.
func (DemoSource) Entries(ctx context.Context) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]leaderboard.Entry, len(demoEntries))
	copy(out, demoEntries)
	return out, nil
}
