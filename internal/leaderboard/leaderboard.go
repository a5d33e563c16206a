// Package leaderboard ranks per-builder aggregates. It never computes the
// aggregates itself and never mutates the entries it is given.
package leaderboard

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hackerhouse/hhboard/internal/scoring"
)

// ErrUnknownSortKey is returned by ParseSortKey for anything but points or streak.
var ErrUnknownSortKey = errors.New("unknown sort key")

// Entry is one builder's aggregated standing.
type Entry struct {
	UserID        string       `json:"user_id" yaml:"user_id"`
	Name          string       `json:"name" yaml:"name"`
	Role          scoring.Role `json:"role" yaml:"role"`
	Tagline       string       `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	AvatarURL     string       `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	TotalPoints   int          `json:"total_points" yaml:"total_points"`
	ActivityCount int          `json:"activity_count" yaml:"activity_count"`
	StreakDays    int          `json:"streak_days" yaml:"streak_days"`
	LastActivity  time.Time    `json:"last_activity,omitempty" yaml:"last_activity,omitempty"`
}

// SortKey selects the field entries are ranked by.
type SortKey string

// Sort keys.
const (
	SortByPoints SortKey = "points"
	SortByStreak SortKey = "streak"
)

// ParseSortKey validates a sort key label.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortByPoints, SortByStreak:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q (want points or streak)", ErrUnknownSortKey, s)
	}
}

// Medal is the podium tier shown for the top three positions.
type Medal string

// Medals.
const (
	MedalNone   Medal = ""
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

// MedalFor returns the medal for a 1-based position.
func MedalFor(position int) Medal {
	switch position {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return MedalNone
	}
}

// Ranked is an entry at its leaderboard position.
type Ranked struct {
	Position  int               `json:"position"`
	Entry     Entry             `json:"entry"`
	Level     scoring.LevelInfo `json:"level"`
	Medal     Medal             `json:"medal,omitempty"`
	Milestone int               `json:"streak_milestone"`
}

// Rank orders entries by key, highest first. The sort is stable, so tied
// entries keep their input order. Positions are 1-based.
func Rank(entries []Entry, key SortKey) []Ranked {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if key == SortByStreak {
			return sorted[i].StreakDays > sorted[j].StreakDays
		}
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})

	ranked := make([]Ranked, len(sorted))
	for i, e := range sorted {
		ranked[i] = Ranked{
			Position:  i + 1,
			Entry:     e,
			Level:     scoring.LevelFor(e.TotalPoints),
			Medal:     MedalFor(i + 1),
			Milestone: scoring.TieredStreakBonus(e.StreakDays),
		}
	}
	return ranked
}

// Find returns the ranked row for userID.
func Find(ranked []Ranked, userID string) (Ranked, bool) {
	for _, r := range ranked {
		if r.Entry.UserID == userID {
			return r, true
		}
	}
	return Ranked{}, false
}

// Podium returns at most the first three rows.
func Podium(ranked []Ranked) []Ranked {
	if len(ranked) > 3 {
		return ranked[:3]
	}
	return ranked
}

// Summary holds house-wide totals.
type Summary struct {
	Builders      int `json:"builders"`
	TotalPoints   int `json:"total_points"`
	AveragePoints int `json:"average_points"`
	MaxStreak     int `json:"max_streak"`
	MaxPoints     int `json:"max_points"`
}

// Stats summarizes entries. An empty leaderboard yields all zeros.
func Stats(entries []Entry) Summary {
	s := Summary{Builders: len(entries)}
	for _, e := range entries {
		s.TotalPoints += e.TotalPoints
		if e.StreakDays > s.MaxStreak {
			s.MaxStreak = e.StreakDays
		}
		if e.TotalPoints > s.MaxPoints {
			s.MaxPoints = e.TotalPoints
		}
	}
	if s.Builders > 0 {
		s.AveragePoints = int(math.Round(float64(s.TotalPoints) / float64(s.Builders)))
	}
	return s
}

// Share is e's points as a fraction of the top score, for progress bars.
func Share(e Entry, s Summary) float64 {
	top := s.MaxPoints
	if top < 1 {
		top = 1
	}
	return float64(e.TotalPoints) / float64(top)
}
