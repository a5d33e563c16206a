package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hackerhouse/hhboard/internal/scoring"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	out        io.Writer
	verbose    bool
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(out io.Writer, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		out:        out,
		verbose:    verbose,
		outputFile: outputFile,
	}
}

// Leaderboard writes the board as a Markdown table
func (f *MarkdownFormatter) Leaderboard(r *LeaderboardReport) error {
	var builder strings.Builder

	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	builder.WriteString("# Hacker House Leaderboard\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", generated.Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Sorted by:** %s\n\n", r.SortKey))

	// Summary Table
	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Value |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Builders | %d |\n", r.Stats.Builders))
	builder.WriteString(fmt.Sprintf("| Total Points | %s |\n", formatNumber(r.Stats.TotalPoints)))
	builder.WriteString(fmt.Sprintf("| Average Points | %s |\n", formatNumber(r.Stats.AveragePoints)))
	builder.WriteString(fmt.Sprintf("| Longest Streak | %d days |\n", r.Stats.MaxStreak))
	builder.WriteString("\n")

	builder.WriteString("## Rankings\n\n")
	if len(r.Rows) == 0 {
		builder.WriteString("*No builders yet.*\n")
		return emit(f.out, f.outputFile, []byte(builder.String()))
	}

	header := "| # | Builder | Role | Points | Streak | Level |"
	divider := "|---|---------|------|-------:|-------:|-------|"
	if r.Moves != nil {
		header += " Move |"
		divider += "------|"
	}
	builder.WriteString(header + "\n" + divider + "\n")

	for _, row := range r.Rows {
		e := row.Entry
		pos := fmt.Sprintf("%d", row.Position)
		if icon := medalIcon(row.Medal); icon != "" {
			pos = icon + " " + pos
		}
		line := fmt.Sprintf("| %s | %s | %s | %s | %d | %d %s |",
			pos, escapeCell(e.Name), e.Role, formatNumber(e.TotalPoints), e.StreakDays, row.Level.Level, row.Level.Title)
		if r.Moves != nil {
			line += fmt.Sprintf(" %s |", r.Moves[e.UserID])
		}
		builder.WriteString(line + "\n")
	}

	if f.verbose {
		builder.WriteString("\n## Builders\n\n")
		for _, row := range r.Rows {
			e := row.Entry
			builder.WriteString(fmt.Sprintf("### %s\n\n", e.Name))
			if e.Tagline != "" {
				builder.WriteString(fmt.Sprintf("> %s\n\n", e.Tagline))
			}
			builder.WriteString(fmt.Sprintf("- Activities: %d\n", e.ActivityCount))
			if !row.Level.MaxLevel() {
				builder.WriteString(fmt.Sprintf("- Points to next level: %d\n", row.Level.PointsToNext))
			}
			if row.Milestone > 0 {
				builder.WriteString(fmt.Sprintf("- Streak badge: +%d\n", row.Milestone))
			}
			builder.WriteString("\n")
		}
	}

	return emit(f.out, f.outputFile, []byte(builder.String()))
}

// Score writes a score breakdown as a Markdown table
func (f *MarkdownFormatter) Score(b scoring.Breakdown) error {
	var builder strings.Builder

	in := b.Input
	builder.WriteString("# Activity Score\n\n")
	builder.WriteString(fmt.Sprintf("**Activity:** %s\n\n", in.Description))
	builder.WriteString(fmt.Sprintf("**Category:** `%s` · **Role:** `%s`\n\n", in.Category, in.Role))

	builder.WriteString("| Step | Points | Note |\n")
	builder.WriteString("|------|-------:|------|\n")
	for _, m := range b.Details() {
		note := m.Note
		switch m.Category {
		case "base":
			if !m.Passed {
				note = "category default"
			}
		case "cap":
			note = fmt.Sprintf("limit %d", m.MaxPoints)
			if !m.Passed {
				note += ", capped"
			}
		case "role":
			note = fmt.Sprintf("×%.1f", b.Multiplier)
		case "streak":
			note = fmt.Sprintf("%d-day streak", in.StreakDays)
		}
		builder.WriteString(fmt.Sprintf("| %s | %d | %s |\n", m.Name, m.Points, escapeCell(note)))
	}
	builder.WriteString(fmt.Sprintf("\n**Final:** %d points\n", b.Final))
	if b.Milestone > 0 {
		builder.WriteString(fmt.Sprintf("\n*Streak milestone badge: %d (display only)*\n", b.Milestone))
	}

	return emit(f.out, f.outputFile, []byte(builder.String()))
}

// Level writes level info as Markdown
func (f *MarkdownFormatter) Level(info scoring.LevelInfo) error {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("# Level %d: %s\n\n", info.Level, info.Title))
	builder.WriteString(fmt.Sprintf("- Points: %s\n", formatNumber(info.Points)))
	if info.MaxLevel() {
		builder.WriteString("- Max level reached\n")
	} else {
		builder.WriteString(fmt.Sprintf("- Next: %s in %d points (%s there)\n", nextTitle(info), info.PointsToNext, percent(info.Progress())))
	}

	return emit(f.out, f.outputFile, []byte(builder.String()))
}

// Rules writes the rule table as Markdown, one section per category
func (f *MarkdownFormatter) Rules(r *RulesReport) error {
	var builder strings.Builder

	builder.WriteString("# Rule Table\n\n")
	builder.WriteString(fmt.Sprintf("Each activity earns at most **%d** points before the role multiplier.\n\n", r.Cap))

	for _, c := range reportCategories(r) {
		builder.WriteString(fmt.Sprintf("## %s\n\n", c))
		builder.WriteString("| Rule | Points | Keywords |\n")
		builder.WriteString("|------|-------:|----------|\n")
		for _, rule := range rulesFor(r, c) {
			builder.WriteString(fmt.Sprintf("| %s | %d | %s |\n", escapeCell(rule.Description), rule.Points, strings.Join(rule.Keywords, ", ")))
		}
		builder.WriteString(fmt.Sprintf("| *default* | %d | |\n\n", defaultFor(r, c)))
	}

	if len(r.Evidence) > 0 {
		builder.WriteString("## Evidence bonuses\n\n")
		for _, e := range r.Evidence {
			builder.WriteString(fmt.Sprintf("- `%s`: +%d\n", e.Host, e.Bonus))
		}
	}

	return emit(f.out, f.outputFile, []byte(builder.String()))
}

// Countdown writes the countdown as Markdown
func (f *MarkdownFormatter) Countdown(r *CountdownReport) error {
	var builder strings.Builder

	builder.WriteString("# Demo Day Countdown\n\n")
	builder.WriteString(fmt.Sprintf("**Demo day:** %s\n\n", r.DemoDay.Format("2006-01-02 15:04 MST")))
	if r.Remaining.Done {
		builder.WriteString("Demo day is here!\n\n")
	} else {
		builder.WriteString(fmt.Sprintf("**Remaining:** %s\n\n", r.Remaining))
	}
	builder.WriteString(fmt.Sprintf("**Sprint elapsed:** %s\n", percent(r.Progress)))

	return emit(f.out, f.outputFile, []byte(builder.String()))
}

// escapeCell keeps pipes in user text from breaking a table row
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
