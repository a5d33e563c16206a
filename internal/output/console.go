package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

const barWidth = 10

// ConsoleFormatter formats output for terminal display
type ConsoleFormatter struct {
	out        io.Writer
	outputFile string
	quiet      bool
	verbose    bool
	colorize   bool
}

// NewConsoleFormatter creates a new ConsoleFormatter. Colors are only used
// when colorize is set and no output file is given.
func NewConsoleFormatter(out io.Writer, outputFile string, quiet, verbose, colorize bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		out:        out,
		outputFile: outputFile,
		quiet:      quiet,
		verbose:    verbose,
		colorize:   colorize && outputFile == "",
	}
}

func (f *ConsoleFormatter) style(color string, bold bool) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if bold {
		s = s.Bold(true)
	}
	return s
}

// Leaderboard prints the ranked board with medals, levels and a stats row.
// Quiet mode prints one "position user points" line per builder.
func (f *ConsoleFormatter) Leaderboard(r *LeaderboardReport) error {
	var b strings.Builder

	if f.quiet {
		for _, row := range r.Rows {
			fmt.Fprintf(&b, "%d %s %d\n", row.Position, row.Entry.UserID, row.Entry.TotalPoints)
		}
		return emit(f.out, f.outputFile, []byte(b.String()))
	}

	bold := f.style("15", true)
	dim := f.style("8", false)
	gold := f.style("11", true)
	fire := f.style("208", false)
	green := f.style("10", false)
	red := f.style("9", false)

	fmt.Fprintf(&b, "%s %s\n\n", bold.Render("🏆 Hacker House Leaderboard"), dim.Render("· by "+string(r.SortKey)))

	if len(r.Rows) == 0 {
		b.WriteString("No builders yet.\n")
		return emit(f.out, f.outputFile, []byte(b.String()))
	}

	for _, row := range r.Rows {
		e := row.Entry
		icon := medalIcon(row.Medal)
		if icon == "" {
			icon = "  "
		}

		name := fmt.Sprintf("%-20s", e.Name)
		if row.Medal != leaderboard.MedalNone {
			name = gold.Render(name)
		}

		fmt.Fprintf(&b, "%s %2d. %s %-8s %10s  %s  Lv %d %-9s %s",
			icon, row.Position, name, e.Role,
			formatPoints(e.TotalPoints),
			fire.Render(fmt.Sprintf("🔥 %2dd", e.StreakDays)),
			row.Level.Level, row.Level.Title,
			dim.Render(progressBar(row.Level.Progress(), barWidth)),
		)

		if r.Moves != nil {
			move := r.Moves[e.UserID]
			switch {
			case move.New:
				b.WriteString("  " + green.Render("new"))
			case move.Delta > 0:
				b.WriteString("  " + green.Render("▲"+move.String()))
			case move.Delta < 0:
				b.WriteString("  " + red.Render("▼"+move.String()))
			}
		}
		b.WriteString("\n")

		if f.verbose {
			var parts []string
			if e.Tagline != "" {
				parts = append(parts, e.Tagline)
			}
			parts = append(parts, fmt.Sprintf("%d activities", e.ActivityCount))
			if !row.Level.MaxLevel() {
				parts = append(parts, fmt.Sprintf("%s to next level", formatPoints(row.Level.PointsToNext)))
			}
			if row.Milestone > 0 {
				parts = append(parts, fmt.Sprintf("streak badge +%d", row.Milestone))
			}
			fmt.Fprintf(&b, "        %s\n", dim.Render(strings.Join(parts, " · ")))
		}
	}

	s := r.Stats
	fmt.Fprintf(&b, "\n%s\n", dim.Render(fmt.Sprintf("%d builders · %s total · avg %s · longest streak %dd",
		s.Builders, formatPoints(s.TotalPoints), formatPoints(s.AveragePoints), s.MaxStreak)))

	return emit(f.out, f.outputFile, []byte(b.String()))
}

// Score prints each scoring step and the final points. Quiet mode prints
// only the final points.
func (f *ConsoleFormatter) Score(bd scoring.Breakdown) error {
	var b strings.Builder

	if f.quiet {
		fmt.Fprintf(&b, "%d\n", bd.Final)
		return emit(f.out, f.outputFile, []byte(b.String()))
	}

	bold := f.style("15", true)
	dim := f.style("8", false)
	green := f.style("10", true)
	yellow := f.style("3", false)

	in := bd.Input
	fmt.Fprintf(&b, "%s %s\n\n", bold.Render(in.Description), dim.Render(fmt.Sprintf("(%s, %s)", in.Category, in.Role)))

	for _, m := range bd.Details() {
		switch m.Category {
		case "base":
			note := "category default"
			if m.Passed {
				note = m.Note
			}
			fmt.Fprintf(&b, "  %-9s %4d  %s\n", m.Category, m.Points, dim.Render(note))
		case "evidence":
			fmt.Fprintf(&b, "  %-9s %+4d\n", m.Category, m.Points)
		case "cap":
			line := fmt.Sprintf("  %-9s %4d  of %d", m.Category, m.Points, m.MaxPoints)
			if !m.Passed {
				line = yellow.Render(line + "  capped")
			}
			b.WriteString(line + "\n")
		case "role":
			fmt.Fprintf(&b, "  %-9s %+4d  %s\n", m.Category, m.Points, dim.Render(fmt.Sprintf("×%.1f", bd.Multiplier)))
		case "streak":
			fmt.Fprintf(&b, "  %-9s %+4d  %s\n", m.Category, m.Points, dim.Render(fmt.Sprintf("%d-day streak", in.StreakDays)))
		}
	}

	fmt.Fprintf(&b, "  %s\n", dim.Render(strings.Repeat("─", 16)))
	fmt.Fprintf(&b, "  %s\n", green.Render(fmt.Sprintf("%-9s %4d pts", "total", bd.Final)))

	if bd.Milestone > 0 && f.verbose {
		fmt.Fprintf(&b, "\n  🔥 %s\n", dim.Render(fmt.Sprintf("streak milestone badge: %d (not added to the score)", bd.Milestone)))
	}

	return emit(f.out, f.outputFile, []byte(b.String()))
}

// Level prints the level, title and progress toward the next tier.
func (f *ConsoleFormatter) Level(info scoring.LevelInfo) error {
	var b strings.Builder

	if f.quiet {
		fmt.Fprintf(&b, "%d\n", info.Level)
		return emit(f.out, f.outputFile, []byte(b.String()))
	}

	bold := f.style("15", true)
	dim := f.style("8", false)

	fmt.Fprintf(&b, "%s %s\n", bold.Render(fmt.Sprintf("Level %d · %s", info.Level, info.Title)), dim.Render("("+formatPoints(info.Points)+")"))
	if info.MaxLevel() {
		fmt.Fprintf(&b, "%s  max level reached\n", progressBar(1, barWidth))
	} else {
		next := nextTitle(info)
		fmt.Fprintf(&b, "%s  %s · %s to %s\n", progressBar(info.Progress(), barWidth), percent(info.Progress()),
			formatPoints(info.PointsToNext), next)
	}

	return emit(f.out, f.outputFile, []byte(b.String()))
}

// Rules prints the rule table grouped by category.
func (f *ConsoleFormatter) Rules(r *RulesReport) error {
	var b strings.Builder

	bold := f.style("15", true)
	dim := f.style("8", false)

	if !f.quiet {
		fmt.Fprintf(&b, "%s %s\n", bold.Render("Rule table"), dim.Render(fmt.Sprintf("(cap %d pts per activity)", r.Cap)))
	}

	for _, c := range reportCategories(r) {
		fmt.Fprintf(&b, "\n%s\n", bold.Render(c.String()))
		for _, rule := range rulesFor(r, c) {
			fmt.Fprintf(&b, "  %3d  %-26s %s\n", rule.Points, rule.Description, dim.Render(strings.Join(rule.Keywords, ", ")))
		}
		fmt.Fprintf(&b, "  %3d  %s\n", defaultFor(r, c), dim.Render("default"))
	}

	if !f.quiet && len(r.Evidence) > 0 {
		parts := make([]string, 0, len(r.Evidence))
		for _, e := range r.Evidence {
			parts = append(parts, fmt.Sprintf("%s +%d", e.Host, e.Bonus))
		}
		fmt.Fprintf(&b, "\n%s %s\n", bold.Render("Evidence bonuses:"), strings.Join(parts, ", "))
	}

	return emit(f.out, f.outputFile, []byte(b.String()))
}

// Countdown prints the time left until demo day and how much of the sprint
// has elapsed.
func (f *ConsoleFormatter) Countdown(r *CountdownReport) error {
	if r.Remaining.Done && !f.quiet && f.colorize && f.outputFile == "" {
		printCelebration(f.out, "🚀 Demo day is here!")
		return nil
	}

	var b strings.Builder
	if f.quiet {
		fmt.Fprintf(&b, "%s\n", r.Remaining)
		return emit(f.out, f.outputFile, []byte(b.String()))
	}

	bold := f.style("15", true)
	dim := f.style("8", false)

	fmt.Fprintf(&b, "%s %s\n", bold.Render("⏰ Demo day"), dim.Render(r.DemoDay.Format("Mon, 02 Jan 2006 15:04 MST")))
	if r.Remaining.Done {
		b.WriteString("🚀 Demo day is here!\n")
	} else {
		fmt.Fprintf(&b, "%s to go\n", bold.Render(r.Remaining.String()))
	}
	fmt.Fprintf(&b, "%s  %s of the sprint elapsed\n", progressBar(r.Progress, 2*barWidth), percent(r.Progress))

	return emit(f.out, f.outputFile, []byte(b.String()))
}

// nextTitle is the title of the tier after info's, or "" at max level.
func nextTitle(info scoring.LevelInfo) string {
	tiers := scoring.LevelTiers()
	if info.Level < len(tiers) {
		return tiers[info.Level].Title
	}
	return ""
}

// reportCategories returns the categories a rules report covers, in
// display order.
func reportCategories(r *RulesReport) []scoring.Category {
	if r.Category.Known() {
		return []scoring.Category{r.Category}
	}
	return scoring.Categories()
}

func rulesFor(r *RulesReport, c scoring.Category) []scoring.ScoringRule {
	var out []scoring.ScoringRule
	for _, rule := range r.Rules {
		if rule.Category == c {
			out = append(out, rule)
		}
	}
	return out
}

func defaultFor(r *RulesReport, c scoring.Category) int {
	for _, d := range r.Defaults {
		if d.Category == c {
			return d.Points
		}
	}
	return 0
}
