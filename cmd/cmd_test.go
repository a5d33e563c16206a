package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default so executions do not leak
// into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes hhboard with args from a fresh temp dir and returns what
// was written to stdout and the exit code.
func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))

	var buf bytes.Buffer
	code := 0
	oldStdout, oldExit, oldNow := stdout, exitFunc, nowFunc
	stdout = &buf
	exitFunc = func(c int) { code = c }
	nowFunc = func() time.Time { return time.Date(2025, 9, 22, 15, 29, 55, 0, time.UTC) }
	t.Cleanup(func() {
		stdout, exitFunc, nowFunc = oldStdout, oldExit, oldNow
		_ = os.Chdir(oldWd)
	})

	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		code = 1
	}
	return buf.String(), code
}

func writeData(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCommandsConfigured(t *testing.T) {
	tests := []struct {
		cmd *cobra.Command
		use string
	}{
		{rootCmd, "hhboard"},
		{scoreCmd, "score <description...>"},
		{levelCmd, "level <points>"},
		{leaderboardCmd, "leaderboard"},
		{rulesCmd, "rules"},
		{countdownCmd, "countdown"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotEmpty(t, tt.cmd.Long)
			assert.NotNil(t, tt.cmd.Run)
		})
	}
}

func TestScoreCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     string
		wantCode int
	}{
		{
			name: "bug fix with github evidence",
			args: []string{"score", "Fixed", "login", "bug", "-c", "code", "--role", "coder", "-e", "https://github.com/house/app", "-q"},
			want: "12\n",
		},
		{
			name: "weekly streak added after multiplier",
			args: []string{"score", "Fixed login bug", "-c", "code", "--role", "coder", "-e", "https://github.com/house/app", "-s", "14", "-q"},
			want: "16\n",
		},
		{
			name: "unknown category falls back to neutral scoring",
			args: []string{"score", "something", "-c", "marketing", "--role", "coder", "-q"},
			want: "5\n",
		},
		{
			name:     "negative streak",
			args:     []string{"score", "bug", "-c", "code", "-s", "-1"},
			wantCode: 1,
		},
		{
			name:     "category is required",
			args:     []string{"score", "bug"},
			wantCode: 1,
		},
		{
			name:     "description is required",
			args:     []string{"score", "-c", "code"},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantCode == 0 {
				assert.Equal(t, tt.want, out)
			}
		})
	}
}

func TestScoreCmd_JSON(t *testing.T) {
	out, code := runCLI(t, "score", "Closed a deal with Acme", "-c", "biz", "--role", "biz", "-f", "json")
	require.Equal(t, 0, code)

	var got struct {
		Category  string `json:"category"`
		Breakdown struct {
			Base        int    `json:"base"`
			MatchedRule string `json:"matched_rule"`
			Final       int    `json:"final"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "biz", got.Category)
	assert.Equal(t, 20, got.Breakdown.Base)
	assert.Equal(t, "1 partnership", got.Breakdown.MatchedRule)
	assert.Equal(t, 24, got.Breakdown.Final)
}

func TestScoreCmd_RulesOverride(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("cap: 20\nmultipliers:\n  coder:\n    code: 2\n"), 0644))

	out, code := runCLI(t, "score", "shipped a feature", "-c", "code", "--role", "coder", "--rules", rules, "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "40\n", out)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cap: -3\n"), 0644))
	_, code = runCLI(t, "score", "bug", "-c", "code", "--rules", bad)
	assert.Equal(t, 1, code)
}

func TestLevelCmd(t *testing.T) {
	out, code := runCLI(t, "level", "285", "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "3\n", out)

	out, code = runCLI(t, "level", "285")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Level 3 · Hustler")
	assert.Contains(t, out, "15 pts to Achiever")

	_, code = runCLI(t, "level", "lots")
	assert.Equal(t, 1, code)

	_, code = runCLI(t, "level")
	assert.Equal(t, 1, code)
}

func TestLeaderboardCmd_Demo(t *testing.T) {
	out, code := runCLI(t, "leaderboard", "--demo", "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "1 demo-alice 285\n2 demo-admin 150\n", out)

	out, code = runCLI(t, "--demo", "-q")
	require.Equal(t, 0, code, "root command shows the leaderboard")
	assert.Equal(t, "1 demo-alice 285\n2 demo-admin 150\n", out)

	out, code = runCLI(t, "board", "--demo", "--user", "demo-admin", "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "2 demo-admin 150\n", out)

	_, code = runCLI(t, "leaderboard", "--demo", "--user", "nobody")
	assert.Equal(t, 1, code)
}

func TestLeaderboardCmd_Files(t *testing.T) {
	root := t.TempDir()
	writeData(t, root, "data/board.yaml", `
entries:
  - user_id: ana
    name: Ana
    role: biz
    total_points: 90
    streak_days: 20
  - user_id: ben
    name: Ben
    role: coder
    total_points: 200
    streak_days: 3
`)

	out, code := runCLI(t, "leaderboard", "-r", root, "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "1 ben 200\n2 ana 90\n", out)

	out, code = runCLI(t, "leaderboard", "-r", root, "--sort", "streak", "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "1 ana 90\n2 ben 200\n", out)

	out, code = runCLI(t, "leaderboard", "-r", root, "-f", "markdown")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "| 🥇 1 | Ben | coder | 200 | 3 | 3 Hustler |")

	_, code = runCLI(t, "leaderboard", "-r", root, "--sort", "name")
	assert.Equal(t, 1, code)
}

func TestLeaderboardCmd_NoData(t *testing.T) {
	_, code := runCLI(t, "leaderboard", "-r", t.TempDir())
	assert.Equal(t, 1, code)
}

func TestLeaderboardCmd_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	_, code := runCLI(t, "leaderboard", "--demo", "-q", "--save-snapshot", path)
	require.Equal(t, 0, code)
	require.FileExists(t, path)

	out, code := runCLI(t, "leaderboard", "--demo", "-f", "json", "--snapshot", path)
	require.Equal(t, 0, code)

	var got struct {
		Rows []struct {
			Movement string `json:"movement"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "=", got.Rows[0].Movement)
	assert.Equal(t, "=", got.Rows[1].Movement)

	_, code = runCLI(t, "leaderboard", "--demo", "--snapshot", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, code)
}

func TestRulesCmd(t *testing.T) {
	out, code := runCLI(t, "rules")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Rule table (cap 50 pts per activity)")
	assert.Contains(t, out, "1 paying customer")

	out, code = runCLI(t, "rules", "-c", "design")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "UI prototype")
	assert.NotContains(t, out, "paying customer")

	_, code = runCLI(t, "rules", "-c", "marketing")
	assert.Equal(t, 1, code)

	out, code = runCLI(t, "rules", "--export")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "cap: 50")
	assert.Contains(t, out, "description: Bug fix")

	exported := filepath.Join(t.TempDir(), "rules.yaml")
	_, code = runCLI(t, "rules", "--export", "-o", exported)
	require.Equal(t, 0, code)
	content, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(content), "multipliers:")
}

func TestCountdownCmd(t *testing.T) {
	out, code := runCLI(t, "countdown", "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "12d 04h 30m 05s\n", out)

	out, code = runCLI(t, "countdown", "-f", "json")
	require.Equal(t, 0, code)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(12), got["days"])
	assert.Equal(t, false, got["done"])
}

func TestInvalidFormat(t *testing.T) {
	_, code := runCLI(t, "level", "10", "-f", "html")
	assert.Equal(t, 1, code)
}
