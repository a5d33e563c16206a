package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

func TestMarkdownFormatter_Leaderboard(t *testing.T) {
	tests := []struct {
		name            string
		report          *LeaderboardReport
		verbose         bool
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:   "table",
			report: demoBoard(),
			wantContains: []string{
				"# Hacker House Leaderboard",
				"**Generated:** 2025-09-22 15:29:55",
				"**Sorted by:** points",
				"| Builders | 2 |",
				"| Total Points | 1,435 |",
				"| Longest Streak | 12 days |",
				"| 🥇 1 | Alice Chen | coder | 1,285 | 12 | 7 Mythical |",
				"| 🥈 2 | Admin User | misc | 150 | 10 | 3 Hustler |",
			},
			wantNotContains: []string{"## Builders", "| Move |"},
		},
		{
			name:         "verbose adds builder sections",
			report:       demoBoard(),
			verbose:      true,
			wantContains: []string{"## Builders", "### Alice Chen", "> Full-stack wizard", "- Points to next level: 150"},
		},
		{
			name:         "empty",
			report:       &LeaderboardReport{SortKey: leaderboard.SortByPoints},
			wantContains: []string{"*No builders yet.*"},
		},
		{
			name: "pipes are escaped",
			report: func() *LeaderboardReport {
				entries := []leaderboard.Entry{{UserID: "x", Name: "A|B"}}
				return &LeaderboardReport{Rows: leaderboard.Rank(entries, leaderboard.SortByPoints), Stats: leaderboard.Stats(entries)}
			}(),
			wantContains: []string{`A\|B`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewMarkdownFormatter(&buf, tt.verbose, "").Leaderboard(tt.report))

			out := buf.String()
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.wantNotContains {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestMarkdownFormatter_Score(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter(&buf, false, "").Score(sampleBreakdown()))

	out := buf.String()
	assert.Contains(t, out, "**Activity:** Fixed login bug")
	assert.Contains(t, out, "**Category:** `code` · **Role:** `coder`")
	assert.Contains(t, out, "| Keyword match | 8 | Bug fix |")
	assert.Contains(t, out, "| Evidence link | 2 |  |")
	assert.Contains(t, out, "| Per-activity cap | 10 | limit 50 |")
	assert.Contains(t, out, "| Role multiplier | 2 | ×1.2 |")
	assert.Contains(t, out, "| Weekly streak | 4 | 14-day streak |")
	assert.Contains(t, out, "**Final:** 16 points")
	assert.Contains(t, out, "Streak milestone badge: 50")
}

func TestMarkdownFormatter_Level(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter(&buf, false, "").Level(scoring.LevelFor(285)))
	assert.Contains(t, buf.String(), "# Level 3: Hustler")
	assert.Contains(t, buf.String(), "- Next: Achiever in 15 points (90% there)")

	buf.Reset()
	require.NoError(t, NewMarkdownFormatter(&buf, false, "").Level(scoring.LevelFor(5000)))
	assert.Contains(t, buf.String(), "- Points: 5,000")
	assert.Contains(t, buf.String(), "- Max level reached")
}

func TestMarkdownFormatter_Rules(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter(&buf, false, "").Rules(sampleRules()))

	out := buf.String()
	assert.Contains(t, out, "at most **50** points")
	assert.Contains(t, out, "## code")
	assert.Contains(t, out, "## misc")
	assert.Contains(t, out, "| Bug fix | 8 | bug, fix, hotfix |")
	assert.Contains(t, out, "| *default* | 15 | |")
	assert.Contains(t, out, "- `youtube.com`: +3")
}

func TestMarkdownFormatter_CountdownToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countdown.md")
	require.NoError(t, NewMarkdownFormatter(nil, false, path).Countdown(sampleCountdown()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "**Demo day:** 2025-10-04 20:00 UTC")
	assert.Contains(t, string(content), "**Remaining:** 12d 04h 30m 05s")
	assert.Contains(t, string(content), "**Sprint elapsed:** 67%")
}
