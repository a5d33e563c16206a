package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	out        io.Writer
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(out io.Writer, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		out:        out,
		indent:     indent,
		outputFile: outputFile,
	}
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONLeaderboard is the leaderboard report
type JSONLeaderboard struct {
	Header  JSONHeader          `json:"header"`
	SortKey string              `json:"sort_key"`
	Stats   leaderboard.Summary `json:"stats"`
	Rows    []JSONRow           `json:"rows"`
}

// JSONRow is one ranked builder
type JSONRow struct {
	leaderboard.Ranked
	Movement string `json:"movement,omitempty"`
}

// JSONScore is a scored activity with its inputs and steps
type JSONScore struct {
	Category     scoring.Category        `json:"category"`
	Role         scoring.Role            `json:"role"`
	Description  string                  `json:"description"`
	EvidenceLink string                  `json:"evidence_link,omitempty"`
	StreakDays   int                     `json:"streak_days"`
	Breakdown    scoring.Breakdown       `json:"breakdown"`
	Steps        []scoring.ScoringMetric `json:"steps"`
}

// JSONRules is the rule table
type JSONRules struct {
	Cap      int                   `json:"cap"`
	Rules    []scoring.ScoringRule `json:"rules"`
	Defaults []CategoryPoints      `json:"defaults"`
	Evidence []JSONEvidence        `json:"evidence"`
}

// JSONEvidence is one evidence link bonus
type JSONEvidence struct {
	Host  string `json:"host"`
	Bonus int    `json:"bonus"`
}

// JSONCountdown is the time left until demo day
type JSONCountdown struct {
	DemoDay  string  `json:"demo_day"`
	Kickoff  string  `json:"kickoff"`
	Now      string  `json:"now"`
	Days     int     `json:"days"`
	Hours    int     `json:"hours"`
	Minutes  int     `json:"minutes"`
	Seconds  int     `json:"seconds"`
	Done     bool    `json:"done"`
	Progress float64 `json:"progress"`
}

// Leaderboard writes the ranked board as JSON
func (f *JSONFormatter) Leaderboard(r *LeaderboardReport) error {
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	report := JSONLeaderboard{
		Header: JSONHeader{
			Tool:      "hhboard",
			Version:   "1.0.0",
			Timestamp: generated.Format(time.RFC3339),
		},
		SortKey: string(r.SortKey),
		Stats:   r.Stats,
		Rows:    make([]JSONRow, len(r.Rows)),
	}
	for i, row := range r.Rows {
		report.Rows[i] = JSONRow{Ranked: row}
		if r.Moves != nil {
			report.Rows[i].Movement = r.Moves[row.Entry.UserID].String()
		}
	}
	return f.write(report)
}

// Score writes a score breakdown as JSON
func (f *JSONFormatter) Score(b scoring.Breakdown) error {
	return f.write(JSONScore{
		Category:     b.Input.Category,
		Role:         b.Input.Role,
		Description:  b.Input.Description,
		EvidenceLink: b.Input.EvidenceLink,
		StreakDays:   b.Input.StreakDays,
		Breakdown:    b,
		Steps:        b.Details(),
	})
}

// Level writes level info as JSON
func (f *JSONFormatter) Level(info scoring.LevelInfo) error {
	return f.write(info)
}

// Rules writes the rule table as JSON
func (f *JSONFormatter) Rules(r *RulesReport) error {
	report := JSONRules{Cap: r.Cap, Rules: []scoring.ScoringRule{}}
	for _, c := range reportCategories(r) {
		report.Rules = append(report.Rules, rulesFor(r, c)...)
		report.Defaults = append(report.Defaults, CategoryPoints{Category: c, Points: defaultFor(r, c)})
	}
	for _, e := range r.Evidence {
		report.Evidence = append(report.Evidence, JSONEvidence{Host: e.Host, Bonus: e.Bonus})
	}
	return f.write(report)
}

// Countdown writes the countdown as JSON
func (f *JSONFormatter) Countdown(r *CountdownReport) error {
	return f.write(JSONCountdown{
		DemoDay:  r.DemoDay.Format(time.RFC3339),
		Kickoff:  r.Kickoff.Format(time.RFC3339),
		Now:      r.Now.Format(time.RFC3339),
		Days:     r.Remaining.Days,
		Hours:    r.Remaining.Hours,
		Minutes:  r.Remaining.Minutes,
		Seconds:  r.Remaining.Seconds,
		Done:     r.Remaining.Done,
		Progress: r.Progress,
	})
}

func (f *JSONFormatter) write(v any) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	return emit(f.out, f.outputFile, append(jsonBytes, '\n'))
}
