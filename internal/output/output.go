// Package output renders hhboard reports for the console, as JSON, or as
// Markdown.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hackerhouse/hhboard/internal/countdown"
	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
	"github.com/hackerhouse/hhboard/internal/snapshot"
)

// Formatter renders each report the CLI produces.
type Formatter interface {
	Leaderboard(r *LeaderboardReport) error
	Score(b scoring.Breakdown) error
	Level(info scoring.LevelInfo) error
	Rules(r *RulesReport) error
	Countdown(r *CountdownReport) error
}

// LeaderboardReport is a ranked board plus house-wide totals.
type LeaderboardReport struct {
	GeneratedAt time.Time
	SortKey     leaderboard.SortKey
	Rows        []leaderboard.Ranked
	Stats       leaderboard.Summary
	// Moves is keyed by user ID; nil when no snapshot was compared.
	Moves map[string]snapshot.Move
}

// RulesReport lists a rule table, optionally narrowed to one category.
type RulesReport struct {
	Category scoring.Category // CategoryUnknown lists every category
	Rules    []scoring.ScoringRule
	Defaults []CategoryPoints
	Evidence []scoring.EvidenceRule
	Cap      int
}

// CategoryPoints is the fallback base for a category.
type CategoryPoints struct {
	Category scoring.Category `json:"category"`
	Points   int              `json:"points"`
}

// CountdownReport is the time left until demo day.
type CountdownReport struct {
	Now       time.Time
	Kickoff   time.Time
	DemoDay   time.Time
	Remaining countdown.Remaining
	Progress  float64
}

//nolint:gochecknoglobals
var numbers = message.NewPrinter(language.English)

// formatPoints renders n with thousands separators, e.g. "1,200 pts".
func formatPoints(n int) string {
	return numbers.Sprintf("%d pts", n)
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	return numbers.Sprintf("%d", n)
}

// medalIcon is the podium emoji for a medal.
func medalIcon(m leaderboard.Medal) string {
	switch m {
	case leaderboard.MedalGold:
		return "🥇"
	case leaderboard.MedalSilver:
		return "🥈"
	case leaderboard.MedalBronze:
		return "🥉"
	default:
		return ""
	}
}

// progressBar draws fraction as a fixed-width bar of filled and empty cells.
func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// percent renders fraction as a whole percentage.
func percent(fraction float64) string {
	return fmt.Sprintf("%d%%", int(fraction*100+0.5))
}

// emit writes content to outputFile when set, otherwise to w.
func emit(w io.Writer, outputFile string, content []byte) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, content, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		return nil
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}
