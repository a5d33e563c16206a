package source

import (
	"sort"
	"time"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

// maxStreakScan bounds how far back StreakDays looks.
const maxStreakScan = 50

// Activity is one logged activity as stored in a data file.
type Activity struct {
	ID           string           `json:"id" yaml:"id"`
	UserID       string           `json:"user_id" yaml:"user_id"`
	Name         string           `json:"name,omitempty" yaml:"name,omitempty"`
	Role         scoring.Role     `json:"role" yaml:"role"`
	Tagline      string           `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Category     scoring.Category `json:"category" yaml:"category"`
	Description  string           `json:"description" yaml:"description"`
	EvidenceLink string           `json:"evidence_link,omitempty" yaml:"evidence_link,omitempty"`
	Points       *int             `json:"points,omitempty" yaml:"points,omitempty"`
	Approved     bool             `json:"approved" yaml:"approved"`
	CreatedAt    time.Time        `json:"created_at" yaml:"created_at"`
}

// Score returns the stored points, or scores the activity with table at
// streak zero when none were recorded.
func (a Activity) Score(table *scoring.Table) int {
	if a.Points != nil {
		return *a.Points
	}
	if table == nil {
		table = scoring.DefaultTable()
	}
	return table.FinalPoints(scoring.ActivityInput{
		Category:     a.Category,
		Description:  a.Description,
		EvidenceLink: a.EvidenceLink,
		Role:         a.Role,
	})
}

// Aggregate folds activities into one entry per user. Only approved
// activities count toward points, activity count, last activity and streak,
// but every user who appears gets an entry. Entries come back ordered by
// user ID.
func Aggregate(activities []Activity, table *scoring.Table, now time.Time) []leaderboard.Entry {
	byUser := make(map[string]*leaderboard.Entry)
	days := make(map[string][]time.Time)

	for _, a := range activities {
		if a.UserID == "" {
			continue
		}
		e, ok := byUser[a.UserID]
		if !ok {
			e = &leaderboard.Entry{UserID: a.UserID}
			byUser[a.UserID] = e
		}
		if e.Name == "" {
			e.Name = a.Name
		}
		if e.Role == scoring.RoleUnknown {
			e.Role = a.Role
		}
		if e.Tagline == "" {
			e.Tagline = a.Tagline
		}

		if !a.Approved {
			continue
		}
		e.TotalPoints += a.Score(table)
		e.ActivityCount++
		if a.CreatedAt.After(e.LastActivity) {
			e.LastActivity = a.CreatedAt
		}
		days[a.UserID] = append(days[a.UserID], a.CreatedAt)
	}

	entries := make([]leaderboard.Entry, 0, len(byUser))
	for id, e := range byUser {
		e.StreakDays = StreakDays(days[id], now)
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}

// StreakDays counts consecutive calendar days with activity, ending today.
// Days are taken in now's location. The count stops at the first day
// without activity, today included, and never exceeds 50.
func StreakDays(activity []time.Time, now time.Time) int {
	active := make(map[string]bool, len(activity))
	for _, t := range activity {
		active[dayKey(t.In(now.Location()))] = true
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	streak := 0
	for i := 0; i < maxStreakScan; i++ {
		if !active[dayKey(today.AddDate(0, 0, -i))] {
			break
		}
		streak++
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
