package scoring

// Breakdown is a scored activity with each intermediate value kept for
// display.
type Breakdown struct {
	Input       ActivityInput `json:"-"`
	Base        int           `json:"base"`
	MatchedRule string        `json:"matched_rule,omitempty"` // empty when the category default was used
	Evidence    int           `json:"evidence_bonus"`
	Raw         int           `json:"raw"` // base+evidence after the cap
	Capped      bool          `json:"capped"`
	Multiplier  float64       `json:"multiplier"`
	Scaled      int           `json:"scaled"`
	StreakBonus int           `json:"streak_bonus"`
	Milestone   int           `json:"milestone_bonus"` // display only, not part of Final
	Final       int           `json:"final"`

	details []ScoringMetric
}

// Details returns one metric per scoring step, in the order applied.
func (b Breakdown) Details() []ScoringMetric {
	return append([]ScoringMetric(nil), b.details...)
}

// ScoringMetric represents a single scoring step
type ScoringMetric struct {
	Category  string `json:"category"`             // base, evidence, cap, role, streak
	Name      string `json:"name"`                 // Human-readable name
	Points    int    `json:"points"`               // Points contributed by this step
	MaxPoints int    `json:"max_points,omitempty"` // Limit, where the step has one
	Passed    bool   `json:"passed"`               // Whether the step applied in the builder's favour
	Note      string `json:"note,omitempty"`
}
