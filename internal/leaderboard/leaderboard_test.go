package leaderboard

import (
	"errors"
	"testing"

	"github.com/hackerhouse/hhboard/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries() []Entry {
	return []Entry{
		{UserID: "a", Name: "Ada", Role: scoring.RoleCoder, TotalPoints: 100, StreakDays: 3},
		{UserID: "b", Name: "Bo", Role: scoring.RoleBiz, TotalPoints: 50, StreakDays: 12},
		{UserID: "c", Name: "Cy", Role: scoring.RoleDesign, TotalPoints: 100, StreakDays: 12},
		{UserID: "d", Name: "Di", Role: scoring.RoleContent, TotalPoints: 310, StreakDays: 0},
	}
}

func ids(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Entry.UserID
	}
	return out
}

func TestRank_Points(t *testing.T) {
	ranked := Rank(entries(), SortByPoints)

	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(ranked))
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Position)
	}
	assert.Equal(t, MedalGold, ranked[0].Medal)
	assert.Equal(t, MedalSilver, ranked[1].Medal)
	assert.Equal(t, MedalBronze, ranked[2].Medal)
	assert.Equal(t, MedalNone, ranked[3].Medal)

	assert.Equal(t, "Achiever", ranked[0].Level.Title)
	assert.Equal(t, "Builder", ranked[1].Level.Title)
	assert.Equal(t, 10, ranked[1].Milestone)
}

func TestRank_Streak(t *testing.T) {
	ranked := Rank(entries(), SortByStreak)
	// b and c tie on 12 days and keep their input order.
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(ranked))
}

func TestRank_StableOnTies(t *testing.T) {
	in := []Entry{
		{UserID: "first", TotalPoints: 100},
		{UserID: "low", TotalPoints: 50},
		{UserID: "second", TotalPoints: 100},
	}
	ranked := Rank(in, SortByPoints)
	assert.Equal(t, []string{"first", "second", "low"}, ids(ranked))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := entries()
	before := append([]Entry(nil), in...)
	_ = Rank(in, SortByPoints)
	assert.Equal(t, before, in)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, SortByPoints))
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("points")
	require.NoError(t, err)
	assert.Equal(t, SortByPoints, key)

	key, err = ParseSortKey(" Streak ")
	require.NoError(t, err)
	assert.Equal(t, SortByStreak, key)

	_, err = ParseSortKey("activities")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSortKey))
}

func TestFind(t *testing.T) {
	ranked := Rank(entries(), SortByPoints)

	r, ok := Find(ranked, "c")
	require.True(t, ok)
	assert.Equal(t, 3, r.Position)

	_, ok = Find(ranked, "nobody")
	assert.False(t, ok)
}

func TestPodium(t *testing.T) {
	ranked := Rank(entries(), SortByPoints)
	assert.Len(t, Podium(ranked), 3)
	assert.Len(t, Podium(ranked[:2]), 2)
}

func TestStats(t *testing.T) {
	s := Stats(entries())
	assert.Equal(t, 4, s.Builders)
	assert.Equal(t, 560, s.TotalPoints)
	assert.Equal(t, 140, s.AveragePoints)
	assert.Equal(t, 12, s.MaxStreak)
	assert.Equal(t, 310, s.MaxPoints)

	assert.Equal(t, Summary{}, Stats(nil))
}

func TestStats_AverageRounds(t *testing.T) {
	s := Stats([]Entry{{TotalPoints: 285}, {TotalPoints: 150}})
	assert.Equal(t, 218, s.AveragePoints)
}

func TestShare(t *testing.T) {
	s := Summary{MaxPoints: 200}
	assert.InDelta(t, 0.5, Share(Entry{TotalPoints: 100}, s), 1e-9)
	assert.InDelta(t, 0.0, Share(Entry{}, Summary{}), 1e-9)
}
