package scoring

import "strings"

// ActivityInput is everything needed to score one self-reported activity.
type ActivityInput struct {
	Category     Category
	Description  string
	EvidenceLink string
	Role         Role
	StreakDays   int
}

// EvidenceRule adds Bonus points when an evidence link contains Host.
type EvidenceRule struct {
	Host  string
	Bonus int
}

//nolint:gochecknoglobals // Scoring configuration constants
var evidenceRules = []EvidenceRule{
	{"github.com", 2},
	{"twitter.com", 1},
	{"linkedin.com", 1},
	{"youtube.com", 3},
}

// EvidenceRules returns the evidence link bonuses.
func EvidenceRules() []EvidenceRule {
	return append([]EvidenceRule(nil), evidenceRules...)
}

// match returns the highest-value rule of category with a keyword in the
// lower-cased description.
func (t *Table) match(category Category, description string) (ScoringRule, bool) {
	desc := strings.ToLower(description)
	var best ScoringRule
	found := false
	for _, r := range t.rules {
		if r.Category != category {
			continue
		}
		for _, kw := range r.Keywords {
			if strings.Contains(desc, kw) {
				if !found || r.Points > best.Points {
					best = r
					found = true
				}
				break
			}
		}
	}
	return best, found
}

// BasePoints returns the points a description earns in category before any
// bonus. Overlapping rules do not stack: the highest matching rule wins.
func (t *Table) BasePoints(category Category, description string) int {
	if r, ok := t.match(category, description); ok {
		return r.Points
	}
	return t.DefaultPoints(category)
}

// EvidenceBonus returns the additive bonus for an evidence link. The link is
// treated as plain text; each recognized host found in it adds its bonus.
func EvidenceBonus(link string) int {
	if link == "" {
		return 0
	}
	bonus := 0
	for _, r := range evidenceRules {
		if strings.Contains(link, r.Host) {
			bonus += r.Bonus
		}
	}
	return bonus
}

// RoleMultiplier returns how much role's activities in category are scaled.
func (t *Table) RoleMultiplier(role Role, category Category) float64 {
	return float64(t.multiplierTenths(role, category)) / 10
}

func (t *Table) multiplierTenths(role Role, category Category) int {
	return t.multipliers[role.index()][category.index()]
}

// TieredStreakBonus is the milestone bonus for a streak. It is shown as a
// badge and never added to an activity's points.
func TieredStreakBonus(streakDays int) int {
	switch {
	case streakDays >= 30:
		return 100
	case streakDays >= 21:
		return 75
	case streakDays >= 14:
		return 50
	case streakDays >= 7:
		return 25
	case streakDays >= 3:
		return 10
	default:
		return 0
	}
}

// WeeklyStreakBonus adds 2 points per full week of streak.
func WeeklyStreakBonus(streakDays int) int {
	if streakDays <= 0 {
		return 0
	}
	return streakDays / 7 * 2
}

// FinalPoints scores one activity. Base and evidence points are capped
// before the role multiplier; the streak bonus is added after it, so the
// result may exceed the cap.
func (t *Table) FinalPoints(in ActivityInput) int {
	return t.Score(in).Final
}

// Score computes the final points for in along with every intermediate
// step.
func (t *Table) Score(in ActivityInput) Breakdown {
	b := Breakdown{Input: in}

	rule, matched := t.match(in.Category, in.Description)
	if matched {
		b.Base = rule.Points
		b.MatchedRule = rule.Description
	} else {
		b.Base = t.DefaultPoints(in.Category)
	}
	b.details = append(b.details, ScoringMetric{
		Category: "base",
		Name:     "Keyword match",
		Points:   b.Base,
		Passed:   matched,
		Note:     b.MatchedRule,
	})

	b.Evidence = EvidenceBonus(in.EvidenceLink)
	b.details = append(b.details, ScoringMetric{
		Category: "evidence",
		Name:     "Evidence link",
		Points:   b.Evidence,
		Passed:   b.Evidence > 0,
	})

	raw := b.Base + b.Evidence
	b.Capped = raw > t.capPoints
	if b.Capped {
		raw = t.capPoints
	}
	b.Raw = raw
	b.details = append(b.details, ScoringMetric{
		Category:  "cap",
		Name:      "Per-activity cap",
		Points:    raw,
		MaxPoints: t.capPoints,
		Passed:    !b.Capped,
	})

	tenths := t.multiplierTenths(in.Role, in.Category)
	b.Multiplier = float64(tenths) / 10
	b.Scaled = raw * tenths / 10
	b.details = append(b.details, ScoringMetric{
		Category: "role",
		Name:     "Role multiplier",
		Points:   b.Scaled - raw,
		Passed:   tenths >= neutralTenths,
	})

	b.StreakBonus = WeeklyStreakBonus(in.StreakDays)
	b.Milestone = TieredStreakBonus(in.StreakDays)
	b.details = append(b.details, ScoringMetric{
		Category: "streak",
		Name:     "Weekly streak",
		Points:   b.StreakBonus,
		Passed:   b.StreakBonus > 0,
	})

	b.Final = b.Scaled + b.StreakBonus
	return b
}

// BasePoints scores a description against the default table.
func BasePoints(category Category, description string) int {
	return defaultTable.BasePoints(category, description)
}

// RoleMultiplier looks up the default multiplier matrix.
func RoleMultiplier(role Role, category Category) float64 {
	return defaultTable.RoleMultiplier(role, category)
}

// FinalPoints scores an activity against the default table.
func FinalPoints(in ActivityInput) int {
	return defaultTable.FinalPoints(in)
}
