package scoring

import (
	"fmt"
	"math"
	"strings"
)

// DefaultCap is the most base+evidence points a single activity can earn
// before the role multiplier is applied.
const DefaultCap = 50

// unknownDefault is the base for an unrecognized category.
const unknownDefault = 5

// neutralTenths is a 1.0 multiplier expressed in tenths.
const neutralTenths = 10

// ScoringRule awards Points to an activity of Category whose description
// contains any of Keywords.
type ScoringRule struct {
	Category    Category `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Points      int      `json:"points" yaml:"points"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

//nolint:gochecknoglobals // Rule table constants
var defaultRules = []ScoringRule{
	{CategoryCode, "5 commits", 10, []string{"commit", "commits", "push"}},
	{CategoryCode, "1 feature shipped", 20, []string{"feature", "ship", "deploy", "launch"}},
	{CategoryCode, "Bug fix", 8, []string{"bug", "fix", "hotfix"}},
	{CategoryCode, "Code review", 5, []string{"review", "pr", "pull request"}},

	{CategoryBiz, "1 partnership", 20, []string{"partnership", "partner", "deal"}},
	{CategoryBiz, "1 paying customer", 30, []string{"customer", "sale", "revenue", "paid"}},
	{CategoryBiz, "Lead generation", 10, []string{"lead", "prospect", "outreach"}},
	{CategoryBiz, "Meeting/Demo", 15, []string{"meeting", "demo", "presentation"}},

	{CategoryContent, "1 long-form video/blog", 15, []string{"blog", "video", "article", "youtube"}},
	{CategoryContent, "1 tweet thread", 10, []string{"thread", "twitter", "tweet"}},
	{CategoryContent, "Social media post", 5, []string{"post", "social", "linkedin", "instagram"}},
	{CategoryContent, "Podcast appearance", 20, []string{"podcast", "interview", "guest"}},

	{CategoryDesign, "1 UI prototype", 15, []string{"prototype", "mockup", "wireframe"}},
	{CategoryDesign, "1 full design shipped", 25, []string{"design", "ui", "shipped", "final"}},
	{CategoryDesign, "Design system component", 12, []string{"component", "system", "library"}},
	{CategoryDesign, "User research", 10, []string{"research", "user", "testing", "interview"}},

	{CategoryMisc, "Daily check-in", 5, []string{"checkin", "check-in", "daily", "standup"}},
	{CategoryMisc, "Help teammate", 8, []string{"help", "assist", "mentor", "pair"}},
	{CategoryMisc, "Learning/Course", 6, []string{"learn", "course", "tutorial", "study"}},
}

//nolint:gochecknoglobals // Rule table constants
var defaultPoints = map[Category]int{
	CategoryCode:    10,
	CategoryBiz:     15,
	CategoryContent: 12,
	CategoryDesign:  15,
	CategoryMisc:    5,
}

// Role multipliers, role -> category.
//
//nolint:gochecknoglobals // Rule table constants
var defaultMultipliers = map[Role]map[Category]float64{
	RoleCoder:   {CategoryCode: 1.2, CategoryBiz: 0.8, CategoryContent: 0.9, CategoryDesign: 0.9, CategoryMisc: 1.0},
	RoleBiz:     {CategoryCode: 0.8, CategoryBiz: 1.2, CategoryContent: 1.0, CategoryDesign: 0.9, CategoryMisc: 1.0},
	RoleContent: {CategoryCode: 0.8, CategoryBiz: 0.9, CategoryContent: 1.2, CategoryDesign: 1.0, CategoryMisc: 1.0},
	RoleDesign:  {CategoryCode: 0.9, CategoryBiz: 0.9, CategoryContent: 1.0, CategoryDesign: 1.2, CategoryMisc: 1.0},
	RoleMisc:    {CategoryCode: 1.0, CategoryBiz: 1.0, CategoryContent: 1.0, CategoryDesign: 1.0, CategoryMisc: 1.1},
}

// TableSpec describes a rule table. Zero-valued sections fall back to the
// built-in values, so an override only has to name what it changes.
type TableSpec struct {
	Rules       []ScoringRule
	Defaults    map[Category]int
	Multipliers map[Role]map[Category]float64
	Cap         int
}

// Table holds everything the scorer reads: the rule table, per-category
// fallback points, the role multiplier matrix and the per-activity cap.
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	rules       []ScoringRule
	defaults    [numCategories]int
	multipliers [numRoles][numCategories]int
	capPoints   int
}

var defaultTable = mustTable(TableSpec{})

// DefaultTable returns the built-in rule table.
func DefaultTable() *Table {
	return defaultTable
}

func mustTable(spec TableSpec) *Table {
	t, err := NewTable(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable builds a Table from spec. Rules and multipliers must name
// recognized categories and roles; points and multipliers must not be
// negative. Multipliers are kept to one decimal place.
func NewTable(spec TableSpec) (*Table, error) {
	t := &Table{capPoints: DefaultCap}
	if spec.Cap < 0 {
		return nil, fmt.Errorf("cap must not be negative, got %d", spec.Cap)
	}
	if spec.Cap > 0 {
		t.capPoints = spec.Cap
	}

	rules := spec.Rules
	if len(rules) == 0 {
		rules = defaultRules
	}
	t.rules = make([]ScoringRule, 0, len(rules))
	for i, r := range rules {
		if !r.Category.Known() {
			return nil, fmt.Errorf("rule %d (%q): unknown category", i, r.Description)
		}
		if r.Points < 0 {
			return nil, fmt.Errorf("rule %d (%q): points must not be negative", i, r.Description)
		}
		keywords := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		t.rules = append(t.rules, ScoringRule{
			Category:    r.Category,
			Description: r.Description,
			Points:      r.Points,
			Keywords:    keywords,
		})
	}

	for c := range spec.Defaults {
		if !c.Known() {
			return nil, fmt.Errorf("defaults: unknown category")
		}
	}
	t.defaults[CategoryUnknown] = unknownDefault
	for _, c := range Categories() {
		points, ok := spec.Defaults[c]
		if !ok {
			points = defaultPoints[c]
		}
		if points < 0 {
			return nil, fmt.Errorf("default points for %s must not be negative", c)
		}
		t.defaults[c] = points
	}

	for r := range t.multipliers {
		for c := range t.multipliers[r] {
			t.multipliers[r][c] = neutralTenths
		}
	}
	for _, role := range Roles() {
		for _, c := range Categories() {
			t.multipliers[role][c] = toTenths(defaultMultipliers[role][c])
		}
	}
	for role, row := range spec.Multipliers {
		if !role.Known() {
			return nil, fmt.Errorf("multipliers: unknown role")
		}
		for c, m := range row {
			if !c.Known() {
				return nil, fmt.Errorf("multipliers.%s: unknown category", role)
			}
			if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
				return nil, fmt.Errorf("multipliers.%s.%s: invalid multiplier %v", role, c, m)
			}
			t.multipliers[role][c] = toTenths(m)
		}
	}

	return t, nil
}

func toTenths(m float64) int {
	return int(math.Round(m * 10))
}

// Rules returns the rules for category, or every rule when category is
// CategoryUnknown. The result is a copy.
func (t *Table) Rules(category Category) []ScoringRule {
	var out []ScoringRule
	for _, r := range t.rules {
		if category != CategoryUnknown && r.Category != category {
			continue
		}
		r.Keywords = append([]string(nil), r.Keywords...)
		out = append(out, r)
	}
	return out
}

// DefaultPoints returns the base awarded when no rule of category matches.
func (t *Table) DefaultPoints(category Category) int {
	return t.defaults[category.index()]
}

// Cap returns the per-activity cap on base+evidence points.
func (t *Table) Cap() int {
	return t.capPoints
}
